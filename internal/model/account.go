package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a user identity record in the account directory.
type Account struct {
	ID             uuid.UUID
	UserName       string
	Email          string
	EmailConfirmed bool
	PasswordHash   []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LoginInfo describes an external login (credential) bound to an account.
type LoginInfo struct {
	Provider    string
	ProviderKey string
	DisplayName string
}

// Matches reports whether the login has the given provider and provider key.
func (l LoginInfo) Matches(provider, providerKey string) bool {
	return l.Provider == provider && l.ProviderKey == providerKey
}

// String returns provider and key joined for logging.
func (l LoginInfo) String() string {
	return l.Provider + ":" + l.ProviderKey
}

// Claim is a (type, value) pair scoped to an account.
type Claim struct {
	Type  string
	Value string
}

// EqualFold compares two claims case-insensitively on both type and value.
func (c Claim) EqualFold(other Claim) bool {
	return strings.EqualFold(c.Type, other.Type) && strings.EqualFold(c.Value, other.Value)
}
