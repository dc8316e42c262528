package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-merge/internal/mocks"
	"github.com/dtroode/identity-merge/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mdAuthHeader string
		accountID    uuid.UUID
		tokenSvcErr  error
		wantGRPCCode codes.Code
		wantMessage  string
		wantErr      bool
		expectSetCtx bool
	}{
		{
			name:         "missing authorization header",
			mdAuthHeader: "",
			wantGRPCCode: codes.Unauthenticated,
			wantMessage:  "missing authorization token",
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			tokenSvcErr:  errors.New("signature is invalid"),
			wantGRPCCode: codes.Unauthenticated,
			wantMessage:  "invalid authorization token",
			wantErr:      true,
		},
		{
			name:         "nil account id from token",
			mdAuthHeader: "Bearer token",
			accountID:    uuid.Nil,
			wantGRPCCode: codes.Unauthenticated,
			wantMessage:  "invalid authorization token",
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			accountID:    uuid.New(),
			wantGRPCCode: codes.OK,
			expectSetCtx: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)

			if tt.expectSetCtx {
				cm.On("SetAccountIDToContext", mock.Anything, tt.accountID).Return(context.Background())
			}

			svc := mocks.NewTokenService(t)
			if tt.mdAuthHeader != "" {
				svc.On("GetAccountID", mock.Anything, "token").Maybe().Return(tt.accountID, tt.tokenSvcErr)
				svc.On("GetAccountID", mock.Anything, "invalid").Maybe().Return(tt.accountID, tt.tokenSvcErr)
			}
			m := NewAuthenticate(svc, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantGRPCCode, st.Code())
				assert.Equal(t, tt.wantMessage, st.Message())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
