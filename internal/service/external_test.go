package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-merge/internal/claims"
	"github.com/dtroode/identity-merge/internal/model"
	"github.com/dtroode/identity-merge/internal/repository/memory"
	"github.com/dtroode/identity-merge/internal/testutil"
)

func newTestExternalLogins(t *testing.T, store *memory.Store) *ExternalLogins {
	t.Helper()
	e, err := NewExternalLogins(store, map[string]string{"github": "GitHub"}, testutil.MakeNoopLogger())
	require.NoError(t, err)
	return e
}

func authResult(scheme string, c ...model.Claim) model.AuthResult {
	return model.AuthResult{
		Claims: c,
		Properties: model.AuthProperties{
			Items: map[string]string{model.ItemScheme: scheme, model.ItemReturnURL: "/merge/done"},
		},
	}
}

func TestExternalLogins_ExtractExternalIdentity(t *testing.T) {
	e := newTestExternalLogins(t, memory.NewStore())

	tests := []struct {
		name      string
		result    model.AuthResult
		want      model.ExternalIdentity
		wantError string
	}{
		{
			name: "sub and email",
			result: authResult("github",
				model.Claim{Type: "sub", Value: "42"},
				model.Claim{Type: "email", Value: "x@y.com"},
				model.Claim{Type: "name", Value: "X"},
			),
			want: model.ExternalIdentity{
				Login:  model.LoginInfo{Provider: "github", ProviderKey: "42", DisplayName: "GitHub"},
				Claims: []model.Claim{{Type: "email", Value: "x@y.com"}, {Type: "name", Value: "X"}},
				Email:  "x@y.com",
			},
		},
		{
			name:   "name identifier fallback and unknown provider",
			result: authResult("gitlab", model.Claim{Type: claims.TypeNameIdentifier, Value: "7"}),
			want: model.ExternalIdentity{
				Login:  model.LoginInfo{Provider: "gitlab", ProviderKey: "7", DisplayName: "gitlab"},
				Claims: []model.Claim{},
			},
		},
		{
			name:      "missing subject",
			result:    authResult("github", model.Claim{Type: "email", Value: "x@y.com"}),
			wantError: "authentication failed: missing external id",
		},
		{
			name:      "missing scheme",
			result:    model.AuthResult{Claims: []model.Claim{{Type: "sub", Value: "1"}}},
			wantError: "authentication failed: missing scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ExtractExternalIdentity(tt.result)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrAuthentication)
				assert.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExternalLogins_BindCredentialToAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := newTestExternalLogins(t, store)
	u := seedAccount(t, store, accountSeed{name: "u"})

	identity := model.ExternalIdentity{
		Login: model.LoginInfo{Provider: "github", ProviderKey: "K", DisplayName: "GitHub"},
		Email: "x@y.com",
	}
	require.NoError(t, e.BindCredentialToAccount(ctx, u.ID, identity))

	emails, err := store.Stores().Emails.GetEmails(ctx, u.ID, nil)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "x@y.com", emails[0].Email)
	require.NotNil(t, emails[0].Login)
	assert.Equal(t, "github", emails[0].Login.Provider)
	assert.Equal(t, "K", emails[0].Login.ProviderKey)

	owner, err := e.FindAccountByCredential(ctx, "github", "K")
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner.ID)
}

func TestExternalLogins_BindCredentialFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := newTestExternalLogins(t, store)
	u := seedAccount(t, store, accountSeed{name: "u"})

	store.FailOn("AddEmail", errors.New("disk full"))
	identity := model.ExternalIdentity{
		Login: model.LoginInfo{Provider: "github", ProviderKey: "K"},
		Email: "x@y.com",
	}

	err := e.BindCredentialToAccount(ctx, u.ID, identity)
	var agg *model.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, "emails: disk full", agg.Error())

	_, err = e.FindAccountByCredential(ctx, "github", "K")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestExternalLogins_BindDuplicateLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := newTestExternalLogins(t, store)
	login := model.LoginInfo{Provider: "github", ProviderKey: "K"}
	seedAccount(t, store, accountSeed{name: "owner", logins: []model.LoginEmail{{Login: login}}})
	other := seedAccount(t, store, accountSeed{name: "other"})

	err := e.BindCredentialToAccount(ctx, other.ID, model.ExternalIdentity{Login: login})
	var agg *model.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, "logins", agg.Errors[0].Code)
	assert.ErrorIs(t, err, memory.ErrDuplicate)
}

func TestExternalLogins_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("credential owned by current account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		current := seedAccount(t, store, accountSeed{
			name:   "current",
			logins: []model.LoginEmail{{Login: model.LoginInfo{Provider: "github", ProviderKey: "1"}}},
		})

		res, err := e.Resolve(ctx, authResult("github", model.Claim{Type: "sub", Value: "1"}), current.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ResolutionSignedIn, res.Action)
		assert.Equal(t, current.ID, res.Account.ID)
	})

	t.Run("credential owned by another account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		current := seedAccount(t, store, accountSeed{name: "current"})
		other := seedAccount(t, store, accountSeed{
			name:   "other",
			logins: []model.LoginEmail{{Login: model.LoginInfo{Provider: "github", ProviderKey: "1"}}},
		})

		res, err := e.Resolve(ctx, authResult("github", model.Claim{Type: "sub", Value: "1"}), current.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ResolutionMergeCandidate, res.Action)
		assert.Equal(t, other.ID, res.Account.ID)
	})

	t.Run("primary email of another account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		current := seedAccount(t, store, accountSeed{name: "current"})
		other := seedAccount(t, store, accountSeed{name: "other", email: "Other@x.com"})

		res, err := e.Resolve(ctx, authResult("github",
			model.Claim{Type: "sub", Value: "1"},
			model.Claim{Type: "email", Value: "other@x.com"},
		), current.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ResolutionMergeCandidate, res.Action)
		assert.Equal(t, other.ID, res.Account.ID)
	})

	t.Run("email record of another account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		current := seedAccount(t, store, accountSeed{name: "current"})
		other := seedAccount(t, store, accountSeed{name: "other", emails: []string{"alt@x.com"}})

		res, err := e.Resolve(ctx, authResult("github",
			model.Claim{Type: "sub", Value: "1"},
			model.Claim{Type: "email", Value: "alt@x.com"},
		), current.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ResolutionMergeCandidate, res.Action)
		assert.Equal(t, other.ID, res.Account.ID)
	})

	t.Run("unknown identity is bound to current account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		current := seedAccount(t, store, accountSeed{name: "current"})

		res, err := e.Resolve(ctx, authResult("github",
			model.Claim{Type: "sub", Value: "1"},
			model.Claim{Type: claims.TypeUPN, Value: "new@x.com"},
		), current.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ResolutionBound, res.Action)
		assert.Equal(t, current.ID, res.Account.ID)
		assert.Equal(t, "new@x.com", res.Identity.Email)

		owner, err := e.FindAccountByCredential(ctx, "github", "1")
		require.NoError(t, err)
		assert.Equal(t, current.ID, owner.ID)
	})

	t.Run("no current account", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)

		_, err := e.Resolve(ctx, authResult("github", model.Claim{Type: "sub", Value: "1"}), uuid.Nil)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestExternalLogins_ConnectToExisting(t *testing.T) {
	ctx := context.Background()

	t.Run("by user id item", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		u := seedAccount(t, store, accountSeed{name: "u", email: "u@x.com"})

		result := authResult("github", model.Claim{Type: "sub", Value: "9"})
		result.Properties.Items[model.ItemUserID] = u.ID.String()

		account, err := e.ConnectToExisting(ctx, result)
		require.NoError(t, err)
		assert.Equal(t, u.ID, account.ID)
		assert.True(t, account.EmailConfirmed)

		stored, err := store.Stores().Accounts.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, stored.EmailConfirmed)
	})

	t.Run("by email", func(t *testing.T) {
		store := memory.NewStore()
		e := newTestExternalLogins(t, store)
		u := seedAccount(t, store, accountSeed{name: "u", email: "u@x.com"})

		account, err := e.ConnectToExisting(ctx, authResult("github",
			model.Claim{Type: "sub", Value: "9"},
			model.Claim{Type: "email", Value: "u@x.com"},
		))
		require.NoError(t, err)
		assert.Equal(t, u.ID, account.ID)

		logins, err := store.Stores().Accounts.GetLogins(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []model.LoginInfo{{Provider: "github", ProviderKey: "9", DisplayName: "GitHub"}}, logins)
	})

	t.Run("invalid user id", func(t *testing.T) {
		e := newTestExternalLogins(t, memory.NewStore())
		result := authResult("github", model.Claim{Type: "sub", Value: "9"})
		result.Properties.Items[model.ItemUserID] = "not-a-uuid"

		_, err := e.ConnectToExisting(ctx, result)
		assert.ErrorIs(t, err, model.ErrAuthentication)
	})

	t.Run("nothing to connect to", func(t *testing.T) {
		e := newTestExternalLogins(t, memory.NewStore())

		_, err := e.ConnectToExisting(ctx, authResult("github", model.Claim{Type: "sub", Value: "9"}))
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
