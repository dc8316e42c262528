package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/identity-merge/internal/api/grpc/context"
	"github.com/dtroode/identity-merge/internal/api/grpc/router"
	grpcServer "github.com/dtroode/identity-merge/internal/api/grpc/server"
	"github.com/dtroode/identity-merge/internal/model"
	"github.com/dtroode/identity-merge/internal/server"
	"github.com/dtroode/identity-merge/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var withReflection bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin gRPC API and the metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(withReflection)
		},
	}

	cmd.Flags().BoolVar(&withReflection, "reflection", true, "register the gRPC reflection service")

	return cmd
}

func runServe(withReflection bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, logger, err := loadConfig(os.Stdout, "serve")
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	r := router.New(router.Services{
		Merger:   a.merger,
		Accounts: a.accounts,
		External: a.external,
		States:   a.tokens,
		Tokens:   service.NewTokenService(a.tokens, a.uow.Stores().Accounts, logger),
	}, grpcctx.NewManager(), logger)
	s := r.Register()
	if withReflection {
		reflection.Register(s)
	}

	servers := []model.Server{
		grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}
	if cfg.Metrics.Addr != "" {
		servers = append(servers, server.NewMetricsServer(cfg.Metrics.Addr))
	}

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewSecurityLayer(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err.Error(), "address", s.Address())
				stop()
			}
		}(srv)
	}

	logger.Info("identityd started", "version", buildVersion, "commit", buildCommit, "date", buildDate)

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	r.Health().Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, srv := range servers {
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err.Error(), "address", srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return nil
}
