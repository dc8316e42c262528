package model

import (
	"context"

	"github.com/google/uuid"
)

// MaxEmailLength is the longest email string the record store accepts.
const MaxEmailLength = 256

// EmailStore persists additional email addresses of an account. Every
// operation runs inside the transaction the store was obtained from.
type EmailStore interface {
	// AddEmail inserts a record or, when one exists for the same account, email
	// and provider, replaces its login binding. A nil login stores an unbound email.
	AddEmail(ctx context.Context, accountID uuid.UUID, email string, login *LoginInfo) error
	// RemoveEmail deletes the record bound to the given login. Missing records are ignored.
	RemoveEmail(ctx context.Context, accountID uuid.UUID, provider, providerKey string) error
	// FindAccountByEmail returns the account owning the first record with exactly this email.
	FindAccountByEmail(ctx context.Context, email string) (Account, error)
	// GetEmails lists records of the account, optionally only those with the given email.
	GetEmails(ctx context.Context, accountID uuid.UUID, email *string) ([]EmailInfo, error)
}

// EmailRecord is a stored email address, optionally bound to one login.
type EmailRecord struct {
	ID               int64
	Email            string
	AccountID        uuid.UUID
	LoginProvider    *string
	LoginProviderKey *string
}

// Bound reports whether the record is tied to a login.
func (r EmailRecord) Bound() bool {
	return r.LoginProvider != nil && r.LoginProviderKey != nil
}

// EmailInfo is the caller-facing view of an email record.
type EmailInfo struct {
	Email string
	Login *LoginInfo
}

// LoginEmail pairs a login with the email bound to it, if any.
type LoginEmail struct {
	Login LoginInfo
	Email *string
}
