package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/model"
)

// Claims represents JWT claims with token type and account ID.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID             `json:"account_id,omitempty"`
	TokenType string                `json:"typ"`
	State     *model.AuthProperties `json:"state,omitempty"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
	stateTTL  time.Duration
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{
		secretKey: secretKey,
		accessTTL: defaultAccessTTL,
		stateTTL:  defaultStateTTL,
	}
}

// WithTTL overrides token lifetimes. Zero keeps the current value.
func (j *JWT) WithTTL(access, state time.Duration) *JWT {
	if access > 0 {
		j.accessTTL = access
	}
	if state > 0 {
		j.stateTTL = state
	}
	return j
}

const (
	defaultAccessTTL = 15 * time.Minute
	defaultStateTTL  = 10 * time.Minute
	typeAccess       = "access"
	typeState        = "state"
)

func (j *JWT) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	return claims, nil
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(accountID uuid.UUID) (string, error) {
	tokenString, err := j.sign(Claims{AccountID: accountID, TokenType: typeAccess}, j.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ParseAccessToken validates and extracts the account ID from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims.AccountID, nil
}

// SealState signs authentication properties so they survive the round trip
// through an external provider.
func (j *JWT) SealState(props model.AuthProperties) (string, error) {
	tokenString, err := j.sign(Claims{TokenType: typeState, State: &props}, j.stateTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return tokenString, nil
}

// OpenState verifies a sealed state and returns its properties.
func (j *JWT) OpenState(state string) (model.AuthProperties, error) {
	claims, err := j.parse(state, typeState)
	if err != nil {
		return model.AuthProperties{}, &model.AuthenticationError{Reason: "invalid state: " + err.Error()}
	}
	if claims.State == nil {
		return model.AuthProperties{}, &model.AuthenticationError{Reason: "empty state"}
	}
	return *claims.State, nil
}
