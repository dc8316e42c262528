package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
)

// actionConnected is reported when a login was connected via ConnectToExisting.
const actionConnected = "connected"

// MergeService merges one account into another.
type MergeService interface {
	Merge(ctx context.Context, targetID, sourceID uuid.UUID) (model.MergeResult, error)
}

// AccountService lists the email records and logins of an account.
type AccountService interface {
	GetEmails(ctx context.Context, accountID uuid.UUID) ([]model.EmailInfo, error)
	GetLoginsEmailInfo(ctx context.Context, accountID uuid.UUID) ([]model.LoginEmail, error)
}

// ExternalLoginService resolves external authentication results to accounts.
type ExternalLoginService interface {
	ExtractExternalIdentity(result model.AuthResult) (model.ExternalIdentity, error)
	Resolve(ctx context.Context, result model.AuthResult, currentAccountID uuid.UUID) (model.Resolution, error)
	ConnectToExisting(ctx context.Context, result model.AuthResult) (model.Account, error)
}

// StateOpener verifies sealed external login state.
type StateOpener interface {
	OpenState(state string) (model.AuthProperties, error)
}

// Accounts handles the admin accounts gRPC endpoints.
type Accounts struct {
	UnimplementedAccountsServer
	merger         MergeService
	accounts       AccountService
	external       ExternalLoginService
	states         StateOpener
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccounts creates a new Accounts handler.
func NewAccounts(
	merger MergeService,
	accounts AccountService,
	external ExternalLoginService,
	states StateOpener,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Accounts {
	return &Accounts{
		merger:         merger,
		accounts:       accounts,
		external:       external,
		states:         states,
		contextManager: contextManager,
		logger:         logger,
	}
}

// MergeAccounts merges source_id into target_id.
// Response fields: status, target_id, source_id, steps[{step, ok, error}], hook_error.
func (h *Accounts) MergeAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	targetID, err := uuidField(req, "target_id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sourceID, err := uuidField(req, "source_id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	h.logger.Debug("Accounts handler: processing merge request",
		"target_id", targetID,
		"source_id", sourceID)

	result, err := h.merger.Merge(ctx, targetID, sourceID)
	if err != nil {
		h.logger.Error("Accounts handler: merge failed",
			"target_id", targetID,
			"source_id", sourceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Accounts handler: merge completed",
		"target_id", targetID,
		"source_id", sourceID,
		"status", result.Status.String())

	out, err := mergeResultToStruct(result)
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

// ListEmails returns the email records and logins of account_id.
// Response fields: account_id, emails[{email, login}], logins[{provider, provider_key, display_name, email}].
func (h *Accounts) ListEmails(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	emails, err := h.accounts.GetEmails(ctx, accountID)
	if err != nil {
		h.logger.Error("Accounts handler: list emails failed",
			"account_id", accountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	logins, err := h.accounts.GetLoginsEmailInfo(ctx, accountID)
	if err != nil {
		h.logger.Error("Accounts handler: list logins failed",
			"account_id", accountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out, err := emailsToStruct(accountID, emails, logins)
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

// ResolveExternalLogin resolves an external authentication callback.
// Request fields: state (sealed properties), claims[{type, value}], connect (bool),
// current_account_id (defaults to the caller's account).
// Response fields: action, account_id, user_name, login, email.
func (h *Accounts) ResolveExternalLogin(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	state := stringField(req, "state")
	if state == "" {
		return nil, status.Error(codes.InvalidArgument, "state is required")
	}
	claims, err := claimsField(req, "claims")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	props, err := h.states.OpenState(state)
	if err != nil {
		h.logger.Info("Accounts handler: rejected external login state",
			"error", err.Error())
		return nil, handleError(err)
	}
	result := model.AuthResult{Claims: claims, Properties: props}

	if req.GetFields()["connect"].GetBoolValue() {
		account, err := h.external.ConnectToExisting(ctx, result)
		if err != nil {
			h.logger.Error("Accounts handler: connect external login failed",
				"error", err.Error())
			return nil, handleError(err)
		}
		identity, err := h.external.ExtractExternalIdentity(result)
		if err != nil {
			return nil, handleError(err)
		}
		return h.respond(resolutionToStruct(actionConnected, account, identity))
	}

	currentID, err := h.currentAccountID(ctx, req)
	if err != nil {
		return nil, err
	}

	resolution, err := h.external.Resolve(ctx, result, currentID)
	if err != nil {
		h.logger.Error("Accounts handler: resolve external login failed",
			"current_account_id", currentID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return h.respond(resolutionToStruct(resolution.Action.String(), resolution.Account, resolution.Identity))
}

func (h *Accounts) respond(out *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

func (h *Accounts) currentAccountID(ctx context.Context, req *structpb.Struct) (uuid.UUID, error) {
	if stringField(req, "current_account_id") != "" {
		id, err := uuidField(req, "current_account_id")
		if err != nil {
			return uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return id, nil
	}

	id, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "account id not found in context")
	}
	return id, nil
}
