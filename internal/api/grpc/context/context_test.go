package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetAccountID(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	ctx := m.SetAccountIDToContext(stdctx.Background(), id)

	got, ok := m.GetAccountIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestManager_GetAccountID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetAccountIDFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_SetAccountID_WithExistingMetadata(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	baseMD := metadata.New(map[string]string{"x-trace-id": "t", "account_id": uuid.NewString()})
	ctxWithMD := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetAccountIDToContext(ctxWithMD, id)
	got, ok := m.GetAccountIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))

	_, ok = m.GetAccountIDFromContext(ctxWithMD)
	assert.True(t, ok)
	assert.NotEqual(t, id.String(), baseMD.Get("account_id")[0])
}

func TestManager_GetAccountID_InvalidUUID(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"account_id": "not-a-uuid"})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)
	_, ok := m.GetAccountIDFromContext(ctx)
	assert.False(t, ok)
}
