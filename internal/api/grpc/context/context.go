package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// accountIDKey is the metadata key used to store and retrieve the caller's account ID.
const (
	accountIDKey string = "account_id"
)

// Manager represents a gRPC context manager for account ID operations.
// It provides methods to set and retrieve account IDs from gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccountIDToContext sets the account ID in the incoming gRPC metadata.
// Existing metadata is kept; a previous account ID is replaced.
//
// Parameters:
//   - ctx: The gRPC context
//   - accountID: The authenticated account UUID
//
// Returns a new context with the account ID in incoming metadata.
func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{accountIDKey: accountID.String()})
	} else {
		md = md.Copy()
		md.Set(accountIDKey, accountID.String())
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetAccountIDFromContext retrieves the account ID from gRPC context metadata.
//
// Parameters:
//   - ctx: The gRPC context
//
// Returns the account UUID and a boolean indicating if a valid ID was found.
func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	ids := md.Get(accountIDKey)
	if len(ids) == 0 {
		return uuid.Nil, false
	}

	accountID, err := uuid.Parse(ids[0])
	if err != nil {
		return uuid.Nil, false
	}

	return accountID, true
}
