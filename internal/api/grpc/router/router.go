package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-merge/internal/api/grpc/handler"
	"github.com/dtroode/identity-merge/internal/api/grpc/middleware"
	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
)

// Services bundles the application services exposed over gRPC.
type Services struct {
	Merger   handler.MergeService
	Accounts handler.AccountService
	External handler.ExternalLoginService
	States   handler.StateOpener
	Tokens   middleware.TokenService
}

// Router represents a gRPC router for identity operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services       Services
	logger         *logger.Logger
	contextManager model.ContextManager
	health         *health.Server
}

// New creates new gRPC Router instance.
//
// Parameters:
//   - services: The services backing the registered handlers
//   - contextManager: Carries the authenticated account ID through the request context
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	services Services,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
		health:         health.NewServer(),
	}
}

// Health returns the health server so callers can flip serving status on shutdown.
func (r *Router) Health() *health.Server {
	return r.health
}

// authSkip reports whether a method requires authentication. Health checks do not.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/grpc.health.v1.Health/")
}

func (r *Router) recover(p any) error {
	r.logger.Error("gRPC handler panicked",
		"panic", fmt.Sprint(p))
	return status.Error(codes.Internal, "internal server error")
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with panic recovery, request logging and
// authentication interceptors.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerAccountRoutes(s)
	r.registerHealth(s)

	return s
}

func (r *Router) registerAccountRoutes(server *grpc.Server) {
	accountsHandler := handler.NewAccounts(
		r.services.Merger,
		r.services.Accounts,
		r.services.External,
		r.services.States,
		r.contextManager,
		r.logger,
	)
	handler.RegisterAccountsServer(server, accountsHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	r.health.SetServingStatus(handler.AccountsServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, r.health)
}
