package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-merge/internal/model"
)

var _ model.UnitOfWork = (*UnitOfWork)(nil)
var _ model.Transaction = (*Transaction)(nil)

// UnitOfWork opens read-committed transactions on the connection pool.
type UnitOfWork struct {
	db *Connection
}

func NewUnitOfWork(db *Connection) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (model.Transaction, error) {
	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return newTransaction(tx), nil
}

func (u *UnitOfWork) Stores() model.Stores {
	return newStores(u.db)
}

func newStores(db DBTX) model.Stores {
	return model.Stores{
		Accounts: NewAccountRepository(db),
		Emails:   NewEmailRepository(db),
	}
}

// Transaction wraps pgx.Tx. Nested transactions are savepoints.
type Transaction struct {
	tx     pgx.Tx
	stores model.Stores
}

func newTransaction(tx pgx.Tx) *Transaction {
	return &Transaction{tx: tx, stores: newStores(tx)}
}

func (t *Transaction) Stores() model.Stores {
	return t.stores
}

func (t *Transaction) Savepoint(ctx context.Context) (model.Transaction, error) {
	nested, err := t.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create savepoint: %w", err)
	}
	return newTransaction(nested), nil
}

func (t *Transaction) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return model.ErrTransactionFinished
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
