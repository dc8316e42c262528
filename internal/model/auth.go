package model

// Item keys carried in AuthProperties across the external login redirect.
const (
	ItemReturnURL = "returnUrl"
	ItemScheme    = "scheme"
	ItemUserID    = "userId"
)

// AuthProperties is the state round-tripped through an external provider.
type AuthProperties struct {
	RedirectURI string            `json:"redirect_uri,omitempty"`
	Items       map[string]string `json:"items,omitempty"`
}

// Item returns a property item and whether it was set to a non-empty value.
func (p AuthProperties) Item(key string) (string, bool) {
	v, ok := p.Items[key]
	return v, ok && v != ""
}

// AuthResult is the outcome of an external authentication callback.
type AuthResult struct {
	Claims     []Claim
	Properties AuthProperties
}

// ExternalIdentity is the identity asserted by an external provider.
type ExternalIdentity struct {
	Login LoginInfo
	// Claims are the asserted claims with the subject removed.
	Claims []Claim
	// Email is derived from the claims; empty when none was asserted.
	Email string
}

// HasEmail reports whether an email was derived from the claims.
func (i ExternalIdentity) HasEmail() bool {
	return i.Email != ""
}

// ResolutionAction says what Resolve did with an external identity.
type ResolutionAction int

const (
	// ResolutionSignedIn means the credential already belongs to the current account.
	ResolutionSignedIn ResolutionAction = iota + 1
	// ResolutionMergeCandidate means another account owns the credential or email.
	ResolutionMergeCandidate
	// ResolutionBound means the credential was bound to the current account.
	ResolutionBound
)

func (a ResolutionAction) String() string {
	switch a {
	case ResolutionSignedIn:
		return "signed_in"
	case ResolutionMergeCandidate:
		return "merge_candidate"
	case ResolutionBound:
		return "bound"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving an external identity against the current account.
type Resolution struct {
	// Account is the account owning the identity, or the current account when bound.
	Account  Account
	Identity ExternalIdentity
	Action   ResolutionAction
}
