package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/claims"
	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/metrics"
	"github.com/dtroode/identity-merge/internal/model"
)

// ExternalLogins resolves identities asserted by external providers to accounts.
type ExternalLogins struct {
	uow          model.UnitOfWork
	displayNames map[string]string
	logger       *logger.Logger
}

func NewExternalLogins(uow model.UnitOfWork, displayNames map[string]string, logger *logger.Logger) (*ExternalLogins, error) {
	if err := requireEmails(uow); err != nil {
		return nil, err
	}
	return &ExternalLogins{
		uow:          uow,
		displayNames: displayNames,
		logger:       logger,
	}, nil
}

// DisplayName returns the configured display name of a provider, or the provider itself.
func (e *ExternalLogins) DisplayName(provider string) string {
	if name, ok := e.displayNames[provider]; ok && name != "" {
		return name
	}
	return provider
}

func (e *ExternalLogins) ExtractExternalIdentity(result model.AuthResult) (model.ExternalIdentity, error) {
	subject, ok := claims.FindSubject(result.Claims)
	if !ok {
		return model.ExternalIdentity{}, &model.AuthenticationError{Reason: "missing external id"}
	}
	provider, ok := result.Properties.Item(model.ItemScheme)
	if !ok {
		return model.ExternalIdentity{}, &model.AuthenticationError{Reason: "missing scheme"}
	}

	remaining := claims.Without(result.Claims, subject)
	email, _ := claims.FindEmail(remaining)

	return model.ExternalIdentity{
		Login: model.LoginInfo{
			Provider:    provider,
			ProviderKey: subject.Value,
			DisplayName: e.DisplayName(provider),
		},
		Claims: remaining,
		Email:  email,
	}, nil
}

func (e *ExternalLogins) FindAccountByCredential(ctx context.Context, provider, providerKey string) (model.Account, error) {
	account, err := e.uow.Stores().Accounts.FindByLogin(ctx, provider, providerKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to find account by login: %w", err)
	}
	return account, nil
}

// BindCredentialToAccount adds the login and its email in one transaction.
// Every failure is reported as *model.AggregateError.
func (e *ExternalLogins) BindCredentialToAccount(ctx context.Context, accountID uuid.UUID, identity model.ExternalIdentity) error {
	return e.bind(ctx, accountID, identity, false)
}

func (e *ExternalLogins) bind(ctx context.Context, accountID uuid.UUID, identity model.ExternalIdentity, confirm bool) error {
	outcomes := NewOutcomes(false)
	login := identity.Login

	err := inTransaction(ctx, e.uow, func(s model.Stores) error {
		if confirm {
			if err := outcomes.Observe(model.StepPrimaryEmail, func() error {
				return s.Accounts.SetEmailConfirmed(ctx, accountID, true)
			}); err != nil {
				return err
			}
		}
		if err := outcomes.Observe(model.StepLogins, func() error {
			return s.Accounts.AddLogin(ctx, accountID, login)
		}); err != nil {
			return err
		}
		if !identity.HasEmail() {
			return nil
		}
		return outcomes.Observe(model.StepEmails, func() error {
			return s.Emails.AddEmail(ctx, accountID, identity.Email, &login)
		})
	})
	if err != nil {
		e.logger.Error("External login service: failed to bind login",
			"account_id", accountID,
			"login", login.String(),
			"error", err.Error())

		var agg *model.AggregateError
		if !errors.As(err, &agg) {
			agg = &model.AggregateError{Errors: []model.IdentityError{{
				Code:        "bind",
				Description: err.Error(),
				Err:         err,
			}}}
		}
		return agg
	}

	e.logger.Info("External login service: login bound",
		"account_id", accountID,
		"login", login.String())
	return nil
}

// Resolve looks up the account owning an external identity. The login is
// matched first, then the asserted email. When neither names another account
// the login is bound to the current account.
func (e *ExternalLogins) Resolve(ctx context.Context, result model.AuthResult, currentAccountID uuid.UUID) (model.Resolution, error) {
	identity, err := e.ExtractExternalIdentity(result)
	if err != nil {
		return model.Resolution{}, err
	}

	resolution, err := e.resolve(ctx, identity, currentAccountID)
	if err != nil {
		return model.Resolution{}, err
	}

	metrics.ExternalResolutions.WithLabelValues(resolution.Action.String()).Inc()
	e.logger.Info("External login service: identity resolved",
		"login", identity.Login.String(),
		"account_id", resolution.Account.ID,
		"action", resolution.Action.String())
	return resolution, nil
}

func (e *ExternalLogins) resolve(ctx context.Context, identity model.ExternalIdentity, currentAccountID uuid.UUID) (model.Resolution, error) {
	account, err := e.FindAccountByCredential(ctx, identity.Login.Provider, identity.Login.ProviderKey)
	switch {
	case err == nil:
		action := model.ResolutionMergeCandidate
		if account.ID == currentAccountID {
			action = model.ResolutionSignedIn
		}
		return model.Resolution{Account: account, Identity: identity, Action: action}, nil
	case !errors.Is(err, model.ErrNotFound):
		return model.Resolution{}, err
	}

	if identity.HasEmail() {
		account, err := findByEmail(ctx, e.uow.Stores(), identity.Email)
		switch {
		case err == nil && account.ID != currentAccountID:
			return model.Resolution{Account: account, Identity: identity, Action: model.ResolutionMergeCandidate}, nil
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return model.Resolution{}, err
		}
	}

	if currentAccountID == uuid.Nil {
		return model.Resolution{}, fmt.Errorf("no account for login %s: %w", identity.Login.String(), model.ErrNotFound)
	}
	if err := e.BindCredentialToAccount(ctx, currentAccountID, identity); err != nil {
		return model.Resolution{}, err
	}
	current, err := e.uow.Stores().Accounts.FindByID(ctx, currentAccountID)
	if err != nil {
		return model.Resolution{}, fmt.Errorf("failed to load current account: %w", err)
	}
	return model.Resolution{Account: current, Identity: identity, Action: model.ResolutionBound}, nil
}

// ConnectToExisting binds the external login to the account named by the
// userId item or, failing that, the asserted email. The account's primary
// email is marked confirmed.
func (e *ExternalLogins) ConnectToExisting(ctx context.Context, result model.AuthResult) (model.Account, error) {
	identity, err := e.ExtractExternalIdentity(result)
	if err != nil {
		return model.Account{}, err
	}

	account, err := e.findExisting(ctx, result, identity)
	if err != nil {
		return model.Account{}, err
	}

	if err := e.bind(ctx, account.ID, identity, true); err != nil {
		return model.Account{}, err
	}
	account.EmailConfirmed = true
	return account, nil
}

func (e *ExternalLogins) findExisting(ctx context.Context, result model.AuthResult, identity model.ExternalIdentity) (model.Account, error) {
	stores := e.uow.Stores()

	if raw, ok := result.Properties.Item(model.ItemUserID); ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return model.Account{}, &model.AuthenticationError{Reason: "invalid user id"}
		}
		return stores.Accounts.FindByID(ctx, id)
	}

	if !identity.HasEmail() {
		return model.Account{}, model.ErrNotFound
	}
	return findByEmail(ctx, stores, identity.Email)
}
