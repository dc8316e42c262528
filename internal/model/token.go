package model

import "github.com/google/uuid"

// TokenManager issues admin access tokens and seals external login state.
type TokenManager interface {
	GenerateAccessToken(accountID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	SealState(props AuthProperties) (string, error)
	OpenState(state string) (AuthProperties, error)
}
