package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-merge/internal/model"
)

func seed(t *testing.T, s *Store, name, email string) model.Account {
	t.Helper()
	a, err := s.Stores().Accounts.Create(context.Background(), model.Account{UserName: name, Email: email})
	require.NoError(t, err)
	return a
}

func TestEmails_AddEmailUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "a@example.com")
	emails := s.Stores().Emails
	login := model.LoginInfo{Provider: "github", ProviderKey: "42", DisplayName: "GitHub"}
	require.NoError(t, s.Stores().Accounts.AddLogin(ctx, a.ID, login))

	require.NoError(t, emails.AddEmail(ctx, a.ID, "x@y.com", nil))
	require.NoError(t, emails.AddEmail(ctx, a.ID, "x@y.com", nil))
	require.NoError(t, emails.AddEmail(ctx, a.ID, "x@y.com", &login))

	list, err := emails.GetEmails(ctx, a.ID, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Login)
	require.NotNil(t, list[1].Login)
	assert.Equal(t, "GitHub", list[1].Login.DisplayName)

	filter := "missing@y.com"
	list, err = emails.GetEmails(ctx, a.ID, &filter)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmails_AddEmailConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "")
	b := seed(t, s, "b", "")
	emails := s.Stores().Emails
	login := model.LoginInfo{Provider: "github", ProviderKey: "42"}

	err := emails.AddEmail(ctx, a.ID, "x@y.com", &login)
	assert.ErrorIs(t, err, ErrForeignKey)

	err = emails.AddEmail(ctx, uuid.New(), "x@y.com", nil)
	assert.ErrorIs(t, err, ErrForeignKey)

	require.NoError(t, s.Stores().Accounts.AddLogin(ctx, a.ID, login))
	require.NoError(t, emails.AddEmail(ctx, a.ID, "x@y.com", &login))
	err = emails.AddEmail(ctx, b.ID, "other@y.com", &login)
	assert.ErrorIs(t, err, ErrDuplicate)

	long := make([]byte, model.MaxEmailLength+1)
	assert.Error(t, emails.AddEmail(ctx, a.ID, string(long), nil))
}

func TestEmails_RemoveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	first := seed(t, s, "first", "")
	second := seed(t, s, "second", "")
	emails := s.Stores().Emails
	login := model.LoginInfo{Provider: "google", ProviderKey: "g1"}
	require.NoError(t, s.Stores().Accounts.AddLogin(ctx, second.ID, login))

	require.NoError(t, emails.AddEmail(ctx, first.ID, "shared@y.com", nil))
	require.NoError(t, emails.AddEmail(ctx, second.ID, "shared@y.com", &login))

	owner, err := emails.FindAccountByEmail(ctx, "shared@y.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, owner.ID)

	_, err = emails.FindAccountByEmail(ctx, "SHARED@y.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = s.Stores().Accounts.RemoveLogin(ctx, second.ID, login.Provider, login.ProviderKey)
	assert.ErrorIs(t, err, ErrForeignKey)

	require.NoError(t, emails.RemoveEmail(ctx, second.ID, login.Provider, login.ProviderKey))
	require.NoError(t, emails.RemoveEmail(ctx, second.ID, login.Provider, login.ProviderKey))
	require.NoError(t, s.Stores().Accounts.RemoveLogin(ctx, second.ID, login.Provider, login.ProviderKey))

	list, err := emails.GetEmails(ctx, second.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccounts_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "a@example.com")
	stores := s.Stores()
	login := model.LoginInfo{Provider: "github", ProviderKey: "1"}

	require.NoError(t, stores.Accounts.AddToRoles(ctx, a.ID, []string{"admin"}))
	require.NoError(t, stores.Accounts.AddLogin(ctx, a.ID, login))
	require.NoError(t, stores.Accounts.AddClaims(ctx, a.ID, []model.Claim{{Type: "t", Value: "v"}}))
	require.NoError(t, stores.Emails.AddEmail(ctx, a.ID, "bound@example.com", &login))

	require.NoError(t, stores.Accounts.Delete(ctx, a.ID))
	assert.ErrorIs(t, stores.Accounts.Delete(ctx, a.ID), model.ErrNotFound)

	_, err := stores.Accounts.FindByLogin(ctx, login.Provider, login.ProviderKey)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = stores.Emails.FindAccountByEmail(ctx, "bound@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
	roles, err := stores.Accounts.GetRoles(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAccounts_Lookups(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "alice", "Alice@Example.com")
	accounts := s.Stores().Accounts

	got, err := accounts.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = accounts.FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = accounts.Create(ctx, model.Account{UserName: "alice"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, accounts.SetEmail(ctx, a.ID, "new@example.com", true))
	got, err = accounts.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.True(t, got.EmailConfirmed)

	assert.ErrorIs(t, accounts.SetEmailConfirmed(ctx, uuid.New(), true), model.ErrNotFound)
}

func TestTransaction_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Stores().Emails.AddEmail(ctx, a.ID, "tx@y.com", nil))

	list, err := s.Stores().Emails.GetEmails(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, list, "uncommitted writes are invisible")

	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), model.ErrTransactionFinished)

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Stores().Emails.AddEmail(ctx, a.ID, "tx@y.com", nil))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	list, err = s.Stores().Emails.GetEmails(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTransaction_Savepoint(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	kept, err := tx.Savepoint(ctx)
	require.NoError(t, err)
	require.NoError(t, kept.Stores().Accounts.AddToRoles(ctx, a.ID, []string{"kept"}))
	require.NoError(t, kept.Commit(ctx))

	dropped, err := tx.Savepoint(ctx)
	require.NoError(t, err)
	require.NoError(t, dropped.Stores().Accounts.AddToRoles(ctx, a.ID, []string{"dropped"}))
	require.NoError(t, dropped.Rollback(ctx))

	require.NoError(t, tx.Commit(ctx))

	roles, err := s.Stores().Accounts.GetRoles(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, roles)
}

func TestStore_BeginWaitsForOpenTransaction(t *testing.T) {
	s := NewStore()
	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, tx.Rollback(context.Background()))
	tx, err = s.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))
}

func TestStore_FailOn(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seed(t, s, "a", "")
	boom := errors.New("boom")

	s.FailOn("AddToRoles", boom)
	assert.ErrorIs(t, s.Stores().Accounts.AddToRoles(ctx, a.ID, []string{"r"}), boom)

	s.FailOn("AddToRoles", nil)
	assert.NoError(t, s.Stores().Accounts.AddToRoles(ctx, a.ID, []string{"r"}))
}
