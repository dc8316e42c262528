package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dtroode/identity-merge/internal/config"
	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
	"github.com/dtroode/identity-merge/internal/repository/postgres"
	"github.com/dtroode/identity-merge/internal/service"
	storage "github.com/dtroode/identity-merge/internal/storage/minio"
	"github.com/dtroode/identity-merge/internal/token"
)

// app holds the services shared by the serve, merge and token commands.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *postgres.Connection
	uow      *postgres.UnitOfWork
	tokens   *token.JWT
	merger   *service.Merger
	accounts *service.Accounts
	external *service.ExternalLogins
}

// loadConfig reads the environment and builds a logger tagged with the command name.
func loadConfig(w io.Writer, command string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(w, cfg.LogLevel).With("command", command), nil
}

func newApp(ctx context.Context, cfg *config.Config, lg *logger.Logger) (*app, error) {
	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: lg,
		db:     db,
		uow:    postgres.NewUnitOfWork(db),
		tokens: token.NewJWT(cfg.JWT.Secret).WithTTL(cfg.JWT.AccessTTL, cfg.JWT.StateTTL),
	}

	var hook model.MergeHook = service.NoopHook{}
	if cfg.Storage.Enabled {
		client, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize receipt storage: %w", err)
		}
		hook = service.NewArchiveHook(client, cfg.Storage.Prefix, lg)
	}

	a.merger, err = service.NewMerger(a.uow, hook, service.MergeOptions{
		MergeUnconfirmedEmails: cfg.Merge.UnconfirmedEmails,
		CollectAllFailures:     cfg.Merge.CollectAllFailures,
		HookFailureFatal:       cfg.Merge.HookFailureFatal,
		Timeout:                cfg.Merge.Timeout,
	}, lg)
	if err != nil {
		db.Close()
		return nil, err
	}

	a.accounts, err = service.NewAccounts(a.uow, lg)
	if err != nil {
		db.Close()
		return nil, err
	}

	a.external, err = service.NewExternalLogins(a.uow, cfg.External.ProviderNames, lg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err.Error())
	}
}
