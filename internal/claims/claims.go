// Package claims reads well-known values out of external identity claims.
package claims

import "github.com/dtroode/identity-merge/internal/model"

// Well-known claim types.
const (
	TypeSubject           = "sub"
	TypeEmailShort        = "email"
	TypePreferredUsername = "preferred_username"
	TypeEmail             = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	TypeUPN               = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/upn"
	TypeNameIdentifier    = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
)

var emailTypes = []string{TypeEmailShort, TypeEmail, TypeUPN, TypePreferredUsername}

var subjectTypes = []string{TypeSubject, TypeNameIdentifier}

// Find returns the value of the first claim with the given type.
func Find(claims []model.Claim, claimType string) (string, bool) {
	for _, c := range claims {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

func findFirst(claims []model.Claim, types []string) (model.Claim, bool) {
	for _, t := range types {
		for _, c := range claims {
			if c.Type == t {
				return c, true
			}
		}
	}
	return model.Claim{}, false
}

// FindEmail returns the email asserted by the claims. Types are tried in
// priority order: email, emailaddress, upn, preferred_username.
func FindEmail(claims []model.Claim) (string, bool) {
	c, ok := findFirst(claims, emailTypes)
	return c.Value, ok
}

// FindSubject returns the subject claim, "sub" first then nameidentifier.
func FindSubject(claims []model.Claim) (model.Claim, bool) {
	return findFirst(claims, subjectTypes)
}

// Without returns the claims minus the given one. The input is not modified.
func Without(claims []model.Claim, drop model.Claim) []model.Claim {
	out := make([]model.Claim, 0, len(claims))
	removed := false
	for _, c := range claims {
		if !removed && c == drop {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}
