package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
)

// Accounts manages the email records and logins of single accounts.
type Accounts struct {
	uow    model.UnitOfWork
	logger *logger.Logger
}

func NewAccounts(uow model.UnitOfWork, logger *logger.Logger) (*Accounts, error) {
	if err := requireEmails(uow); err != nil {
		return nil, err
	}
	return &Accounts{uow: uow, logger: logger}, nil
}

func (a *Accounts) AddEmail(ctx context.Context, accountID uuid.UUID, email string, login *model.LoginInfo) error {
	err := inTransaction(ctx, a.uow, func(s model.Stores) error {
		return s.Emails.AddEmail(ctx, accountID, email, login)
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to add email",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to add email: %w", err)
	}
	return nil
}

// AddLogin binds a login to the account together with the email it asserted.
func (a *Accounts) AddLogin(ctx context.Context, accountID uuid.UUID, login model.LoginInfo, email *string) error {
	err := inTransaction(ctx, a.uow, func(s model.Stores) error {
		if err := s.Accounts.AddLogin(ctx, accountID, login); err != nil {
			return err
		}
		if email != nil && *email != "" {
			return s.Emails.AddEmail(ctx, accountID, *email, &login)
		}
		return nil
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to add login",
			"account_id", accountID,
			"login", login.String(),
			"error", err.Error())
		return fmt.Errorf("failed to add login: %w", err)
	}

	a.logger.Info("Accounts service: login added",
		"account_id", accountID,
		"login", login.String())
	return nil
}

// RemoveLogin drops the email bound to the login first, then the login.
func (a *Accounts) RemoveLogin(ctx context.Context, accountID uuid.UUID, provider, providerKey string) error {
	err := inTransaction(ctx, a.uow, func(s model.Stores) error {
		if err := s.Emails.RemoveEmail(ctx, accountID, provider, providerKey); err != nil {
			return err
		}
		return s.Accounts.RemoveLogin(ctx, accountID, provider, providerKey)
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to remove login",
			"account_id", accountID,
			"provider", provider,
			"error", err.Error())
		return fmt.Errorf("failed to remove login: %w", err)
	}
	return nil
}

func (a *Accounts) GetEmails(ctx context.Context, accountID uuid.UUID) ([]model.EmailInfo, error) {
	emails, err := a.uow.Stores().Emails.GetEmails(ctx, accountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get emails: %w", err)
	}
	return emails, nil
}

// GetLoginsEmailInfo pairs every login of the account with its bound email.
func (a *Accounts) GetLoginsEmailInfo(ctx context.Context, accountID uuid.UUID) ([]model.LoginEmail, error) {
	logins, err := loginsWithEmails(ctx, a.uow.Stores(), accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get logins: %w", err)
	}
	return logins, nil
}

// FindByEmail tries primary emails first and email records second.
func (a *Accounts) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	return findByEmail(ctx, a.uow.Stores(), email)
}

// SetEmail replaces the primary email. A confirmed primary email is kept as
// an email record unless one already exists. The new email is unconfirmed.
func (a *Accounts) SetEmail(ctx context.Context, accountID uuid.UUID, email string) error {
	err := inTransaction(ctx, a.uow, func(s model.Stores) error {
		account, err := s.Accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		if account.EmailConfirmed && account.Email != "" {
			existing, err := s.Emails.GetEmails(ctx, accountID, &account.Email)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				if err := s.Emails.AddEmail(ctx, accountID, account.Email, nil); err != nil {
					return err
				}
			}
		}

		return s.Accounts.SetEmail(ctx, accountID, email, false)
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to set email",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to set email: %w", err)
	}
	return nil
}

// CheckPassword verifies a user name and password. Unknown users and wrong
// passwords both yield model.ErrInvalidCredentials.
func (a *Accounts) CheckPassword(ctx context.Context, userName, password string) (model.Account, error) {
	accounts := a.uow.Stores().Accounts

	account, err := accounts.FindByName(ctx, userName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Accounts service: unknown user name",
				"user_name", userName)
			return model.Account{}, model.ErrInvalidCredentials
		}
		return model.Account{}, fmt.Errorf("failed to find account by name: %w", err)
	}

	ok, err := accounts.CheckPassword(ctx, account, password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to check password: %w", err)
	}
	if !ok {
		a.logger.Info("Accounts service: wrong password",
			"account_id", account.ID)
		return model.Account{}, model.ErrInvalidCredentials
	}
	return account, nil
}

func findByEmail(ctx context.Context, stores model.Stores, email string) (model.Account, error) {
	account, err := stores.Accounts.FindByEmail(ctx, email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to find account by email: %w", err)
	}

	account, err = stores.Emails.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to find account by email record: %w", err)
	}
	return account, nil
}

func loginsWithEmails(ctx context.Context, stores model.Stores, accountID uuid.UUID) ([]model.LoginEmail, error) {
	logins, err := stores.Accounts.GetLogins(ctx, accountID)
	if err != nil {
		return nil, err
	}
	emails, err := stores.Emails.GetEmails(ctx, accountID, nil)
	if err != nil {
		return nil, err
	}

	out := make([]model.LoginEmail, 0, len(logins))
	for _, l := range logins {
		le := model.LoginEmail{Login: l}
		for _, e := range emails {
			if e.Login != nil && e.Login.Matches(l.Provider, l.ProviderKey) {
				email := e.Email
				le.Email = &email
				break
			}
		}
		out = append(out, le)
	}
	return out, nil
}
