package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
)

// TokenService issues admin access tokens for existing accounts and
// resolves them back to account IDs.
type TokenService struct {
	manager  model.TokenManager
	accounts model.AccountDirectory
	logger   *logger.Logger
}

func NewTokenService(manager model.TokenManager, accounts model.AccountDirectory, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, accounts: accounts, logger: logger}
}

// Issue creates an access token for the account with the given user name.
func (s *TokenService) Issue(ctx context.Context, userName string) (string, error) {
	account, err := s.accounts.FindByName(ctx, userName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	token, err := s.manager.GenerateAccessToken(account.ID)
	if err != nil {
		s.logger.Error("Token service: failed to generate access token",
			"account_id", account.ID,
			"error", err.Error())
		return "", fmt.Errorf("issue access: %w", err)
	}

	s.logger.Info("Token service: access token issued",
		"account_id", account.ID)
	return token, nil
}

// GetAccountID parses an access token and checks that its account still exists.
func (s *TokenService) GetAccountID(ctx context.Context, token string) (uuid.UUID, error) {
	accountID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return uuid.Nil, fmt.Errorf("token account: %w", err)
	}
	return accountID, nil
}
