package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/identity-merge/internal/model"
)

// requireEmails resolves the email capability of a unit of work once.
func requireEmails(uow model.UnitOfWork) error {
	if uow == nil || uow.Stores().Emails == nil {
		return model.ErrEmailsUnsupported
	}
	return nil
}

// rollback always completes, even when ctx is already done.
func rollback(ctx context.Context, tx model.Transaction) error {
	return tx.Rollback(context.WithoutCancel(ctx))
}

// inTransaction runs fn in a new transaction and commits when fn succeeds.
func inTransaction(ctx context.Context, uow model.UnitOfWork, fn func(stores model.Stores) error) error {
	tx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stores := tx.Stores()
	if stores.Emails == nil {
		_ = rollback(ctx, tx)
		return model.ErrEmailsUnsupported
	}

	if err := fn(stores); err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = rollback(ctx, tx)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// contextError maps an expired or canceled ctx onto the error the caller sees.
func contextError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return model.ErrTransactionTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	default:
		return err
	}
}
