package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/model"
)

var _ model.EmailStore = (*Emails)(nil)

type Emails struct {
	acc access
}

func sameProvider(p *string, provider *string) bool {
	if p == nil || provider == nil {
		return p == nil && provider == nil
	}
	return *p == *provider
}

func (e *Emails) AddEmail(ctx context.Context, accountID uuid.UUID, email string, login *model.LoginInfo) error {
	if len(email) > model.MaxEmailLength {
		return fmt.Errorf("email longer than %d characters", model.MaxEmailLength)
	}

	var provider, providerKey *string
	if login != nil {
		p, k := login.Provider, login.ProviderKey
		provider, providerKey = &p, &k
	}

	return e.acc.write(ctx, "AddEmail", func(s *state) error {
		if _, ok := s.accounts[accountID]; !ok {
			return fmt.Errorf("account %s: %w", accountID, ErrForeignKey)
		}
		if login != nil {
			if _, ok := s.findLogin(login.Provider, login.ProviderKey); !ok {
				return fmt.Errorf("login %s: %w", login, ErrForeignKey)
			}
		}

		updated := false
		for i, r := range s.emails {
			if r.AccountID == accountID && r.Email == email && sameProvider(r.LoginProvider, provider) {
				s.emails[i].LoginProvider = provider
				s.emails[i].LoginProviderKey = providerKey
				updated = true
			}
		}
		if !updated {
			s.emailSeq++
			s.emails = append(s.emails, model.EmailRecord{
				ID:               s.emailSeq,
				Email:            email,
				AccountID:        accountID,
				LoginProvider:    provider,
				LoginProviderKey: providerKey,
			})
		}

		if login != nil {
			bound := 0
			for _, r := range s.emails {
				if r.Bound() && *r.LoginProvider == login.Provider && *r.LoginProviderKey == login.ProviderKey {
					bound++
				}
			}
			if bound > 1 {
				return fmt.Errorf("email record for login %s: %w", login, ErrDuplicate)
			}
		}
		return nil
	})
}

func (e *Emails) RemoveEmail(ctx context.Context, accountID uuid.UUID, provider, providerKey string) error {
	return e.acc.write(ctx, "RemoveEmail", func(s *state) error {
		kept := s.emails[:0]
		for _, r := range s.emails {
			if r.AccountID == accountID && r.Bound() && *r.LoginProvider == provider && *r.LoginProviderKey == providerKey {
				continue
			}
			kept = append(kept, r)
		}
		s.emails = kept
		return nil
	})
}

func (e *Emails) FindAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	var account model.Account
	err := e.acc.read(ctx, "FindAccountByEmail", func(s *state) error {
		for _, r := range s.emails {
			if r.Email == email {
				account = s.accounts[r.AccountID].Account
				return nil
			}
		}
		return model.ErrNotFound
	})
	if err != nil {
		return model.Account{}, err
	}
	return account, nil
}

func (e *Emails) GetEmails(ctx context.Context, accountID uuid.UUID, email *string) ([]model.EmailInfo, error) {
	var emails []model.EmailInfo
	err := e.acc.read(ctx, "GetEmails", func(s *state) error {
		for _, r := range s.emails {
			if r.AccountID != accountID || (email != nil && r.Email != *email) {
				continue
			}
			info := model.EmailInfo{Email: r.Email}
			if r.Bound() {
				info.Login = &model.LoginInfo{Provider: *r.LoginProvider, ProviderKey: *r.LoginProviderKey}
				if i, ok := s.findLogin(*r.LoginProvider, *r.LoginProviderKey); ok {
					info.Login.DisplayName = s.logins[i].login.DisplayName
				}
			}
			emails = append(emails, info)
		}
		return nil
	})
	return emails, err
}
