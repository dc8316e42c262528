package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/identity-merge/internal/model"
)

var _ model.AccountDirectory = (*Accounts)(nil)

type Accounts struct {
	acc access
}

func (a *Accounts) Create(ctx context.Context, account model.Account) (model.Account, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	err := a.acc.write(ctx, "Create", func(s *state) error {
		if _, ok := s.accounts[account.ID]; ok {
			return fmt.Errorf("account %s: %w", account.ID, ErrDuplicate)
		}
		for _, row := range s.accounts {
			if row.UserName == account.UserName {
				return fmt.Errorf("user name %q: %w", account.UserName, ErrDuplicate)
			}
		}
		s.accountSeq++
		s.accounts[account.ID] = accountRow{Account: account, seq: s.accountSeq}
		return nil
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (a *Accounts) find(ctx context.Context, op string, match func(accountRow) bool) (model.Account, error) {
	var (
		found accountRow
		ok    bool
	)
	err := a.acc.read(ctx, op, func(s *state) error {
		for _, row := range s.accounts {
			if match(row) && (!ok || row.seq < found.seq) {
				found, ok = row, true
			}
		}
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return found.Account, nil
}

func (a *Accounts) FindByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	return a.find(ctx, "FindByID", func(row accountRow) bool { return row.ID == id })
}

func (a *Accounts) FindByName(ctx context.Context, userName string) (model.Account, error) {
	return a.find(ctx, "FindByName", func(row accountRow) bool { return row.UserName == userName })
}

func (a *Accounts) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	return a.find(ctx, "FindByEmail", func(row accountRow) bool {
		return row.Email != "" && strings.EqualFold(row.Email, email)
	})
}

func (a *Accounts) FindByLogin(ctx context.Context, provider, providerKey string) (model.Account, error) {
	var owner uuid.UUID
	err := a.acc.read(ctx, "FindByLogin", func(s *state) error {
		i, ok := s.findLogin(provider, providerKey)
		if !ok {
			return model.ErrNotFound
		}
		owner = s.logins[i].accountID
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	return a.FindByID(ctx, owner)
}

func (a *Accounts) CheckPassword(_ context.Context, account model.Account, password string) (bool, error) {
	if len(account.PasswordHash) == 0 {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return true, nil
}

func (a *Accounts) update(ctx context.Context, op string, id uuid.UUID, fn func(*accountRow)) error {
	return a.acc.write(ctx, op, func(s *state) error {
		row, ok := s.accounts[id]
		if !ok {
			return model.ErrNotFound
		}
		fn(&row)
		row.UpdatedAt = time.Now()
		s.accounts[id] = row
		return nil
	})
}

func (a *Accounts) SetEmail(ctx context.Context, id uuid.UUID, email string, confirmed bool) error {
	return a.update(ctx, "SetEmail", id, func(row *accountRow) {
		row.Email = email
		row.EmailConfirmed = confirmed
	})
}

func (a *Accounts) SetEmailConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error {
	return a.update(ctx, "SetEmailConfirmed", id, func(row *accountRow) {
		row.EmailConfirmed = confirmed
	})
}

func (a *Accounts) Delete(ctx context.Context, id uuid.UUID) error {
	return a.acc.write(ctx, "Delete", func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return model.ErrNotFound
		}
		s.deleteAccount(id)
		return nil
	})
}

func (a *Accounts) GetRoles(ctx context.Context, id uuid.UUID) ([]string, error) {
	var roles []string
	err := a.acc.read(ctx, "GetRoles", func(s *state) error {
		for r := range s.roles[id] {
			roles = append(roles, r)
		}
		return nil
	})
	sort.Strings(roles)
	return roles, err
}

func (a *Accounts) AddToRoles(ctx context.Context, id uuid.UUID, roles []string) error {
	return a.acc.write(ctx, "AddToRoles", func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return fmt.Errorf("account %s: %w", id, ErrForeignKey)
		}
		set, ok := s.roles[id]
		if !ok {
			set = make(map[string]struct{}, len(roles))
			s.roles[id] = set
		}
		for _, r := range roles {
			set[r] = struct{}{}
		}
		return nil
	})
}

func (a *Accounts) GetLogins(ctx context.Context, id uuid.UUID) ([]model.LoginInfo, error) {
	var logins []model.LoginInfo
	err := a.acc.read(ctx, "GetLogins", func(s *state) error {
		for _, l := range s.logins {
			if l.accountID == id {
				logins = append(logins, l.login)
			}
		}
		return nil
	})
	sort.Slice(logins, func(i, j int) bool {
		if logins[i].Provider != logins[j].Provider {
			return logins[i].Provider < logins[j].Provider
		}
		return logins[i].ProviderKey < logins[j].ProviderKey
	})
	return logins, err
}

func (a *Accounts) AddLogin(ctx context.Context, id uuid.UUID, login model.LoginInfo) error {
	return a.acc.write(ctx, "AddLogin", func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return fmt.Errorf("account %s: %w", id, ErrForeignKey)
		}
		if _, ok := s.findLogin(login.Provider, login.ProviderKey); ok {
			return fmt.Errorf("login %s: %w", login, ErrDuplicate)
		}
		s.logins = append(s.logins, loginRow{accountID: id, login: login})
		s.touch(id)
		return nil
	})
}

// RemoveLogin fails while an email record is still bound to the login.
func (a *Accounts) RemoveLogin(ctx context.Context, id uuid.UUID, provider, providerKey string) error {
	return a.acc.write(ctx, "RemoveLogin", func(s *state) error {
		i, ok := s.findLogin(provider, providerKey)
		if !ok || s.logins[i].accountID != id {
			return nil
		}
		for _, e := range s.emails {
			if e.Bound() && *e.LoginProvider == provider && *e.LoginProviderKey == providerKey {
				return fmt.Errorf("login %s:%s referenced by email record %d: %w", provider, providerKey, e.ID, ErrForeignKey)
			}
		}
		s.logins = append(s.logins[:i], s.logins[i+1:]...)
		s.touch(id)
		return nil
	})
}

func (a *Accounts) GetClaims(ctx context.Context, id uuid.UUID) ([]model.Claim, error) {
	var claims []model.Claim
	err := a.acc.read(ctx, "GetClaims", func(s *state) error {
		for _, c := range s.claims {
			if c.accountID == id {
				claims = append(claims, c.claim)
			}
		}
		return nil
	})
	return claims, err
}

func (a *Accounts) AddClaims(ctx context.Context, id uuid.UUID, claims []model.Claim) error {
	return a.acc.write(ctx, "AddClaims", func(s *state) error {
		if _, ok := s.accounts[id]; !ok {
			return fmt.Errorf("account %s: %w", id, ErrForeignKey)
		}
		for _, c := range claims {
			s.claims = append(s.claims, claimRow{accountID: id, claim: c})
		}
		return nil
	})
}
