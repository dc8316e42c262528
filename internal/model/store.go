package model

import (
	"context"

	"github.com/google/uuid"
)

// AccountDirectory is the identity backend holding accounts and their roles,
// logins and claims.
type AccountDirectory interface {
	Create(ctx context.Context, account Account) (Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
	FindByName(ctx context.Context, userName string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByLogin(ctx context.Context, provider, providerKey string) (Account, error)
	CheckPassword(ctx context.Context, account Account, password string) (bool, error)
	SetEmail(ctx context.Context, id uuid.UUID, email string, confirmed bool) error
	SetEmailConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetRoles(ctx context.Context, id uuid.UUID) ([]string, error)
	AddToRoles(ctx context.Context, id uuid.UUID, roles []string) error

	GetLogins(ctx context.Context, id uuid.UUID) ([]LoginInfo, error)
	AddLogin(ctx context.Context, id uuid.UUID, login LoginInfo) error
	RemoveLogin(ctx context.Context, id uuid.UUID, provider, providerKey string) error

	GetClaims(ctx context.Context, id uuid.UUID) ([]Claim, error)
	AddClaims(ctx context.Context, id uuid.UUID, claims []Claim) error
}

// Stores groups the stores bound to one connection or transaction. Emails is
// nil when the backend has no email record support.
type Stores struct {
	Accounts AccountDirectory
	Emails   EmailStore
}

// UnitOfWork opens transactions over the account directory and email store.
type UnitOfWork interface {
	// Begin starts a read-committed transaction.
	Begin(ctx context.Context) (Transaction, error)
	// Stores returns stores that run each call in its own implicit transaction.
	Stores() Stores
}

// Transaction is an explicit transaction handle. Rollback after Commit is a no-op.
type Transaction interface {
	Stores() Stores
	// Savepoint starts a nested transaction that can be rolled back on its own.
	Savepoint(ctx context.Context) (Transaction, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
