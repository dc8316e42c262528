package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/identity-merge/internal/model"
)

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewEmailRepository(t *testing.T) {
	db := &Connection{}
	repo := NewEmailRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUnitOfWork_Stores(t *testing.T) {
	db := &Connection{}
	uow := NewUnitOfWork(db)

	stores := uow.Stores()
	require.NotNil(t, stores.Accounts)
	require.NotNil(t, stores.Emails)
	assert.Equal(t, db, stores.Accounts.(*AccountRepository).db)
	assert.Equal(t, db, stores.Emails.(*EmailRepository).db)
}

func TestConnection_PingNilPool(t *testing.T) {
	conn := &Connection{}

	err := conn.Ping(context.Background())
	assert.Error(t, err)
	assert.NoError(t, conn.Close())
}

func TestAccountRepository_CheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := NewAccountRepository(nil)

	tests := []struct {
		name     string
		account  model.Account
		password string
		want     bool
		wantErr  bool
	}{
		{name: "match", account: model.Account{PasswordHash: hash}, password: "secret", want: true},
		{name: "mismatch", account: model.Account{PasswordHash: hash}, password: "wrong", want: false},
		{name: "no password", account: model.Account{}, password: "secret", want: false},
		{name: "corrupt hash", account: model.Account{PasswordHash: []byte("nope")}, password: "secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.CheckPassword(context.Background(), tt.account, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
