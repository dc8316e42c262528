// Package memory is an in-process implementation of the account directory
// and email record store with transactional snapshots.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/dtroode/identity-merge/internal/model"
)

var (
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)

var _ model.UnitOfWork = (*Store)(nil)
var _ model.Transaction = (*Transaction)(nil)

type access interface {
	read(ctx context.Context, op string, fn func(*state) error) error
	write(ctx context.Context, op string, fn func(*state) error) error
}

// Store is a thread-safe store. Writers, explicit transactions included, are
// serialized; readers see the last committed snapshot.
type Store struct {
	mu   sync.RWMutex
	data *state
	// sem is held by the open root transaction or an implicit write.
	sem chan struct{}

	faultMu sync.Mutex
	faults  map[string]error
}

func NewStore() *Store {
	return &Store{
		data:   newState(),
		sem:    make(chan struct{}, 1),
		faults: make(map[string]error),
	}
}

// FailOn makes every later call of the named operation fail with err.
// A nil err clears the fault.
func (s *Store) FailOn(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faults[op]
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

func (s *Store) Begin(ctx context.Context) (model.Transaction, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data := s.data.clone()
	s.mu.RUnlock()
	return &Transaction{store: s, data: data}, nil
}

// Stores returns stores where every write is its own transaction.
func (s *Store) Stores() model.Stores {
	return storesFor(committed{s: s})
}

func storesFor(acc access) model.Stores {
	return model.Stores{
		Accounts: &Accounts{acc: acc},
		Emails:   &Emails{acc: acc},
	}
}

type committed struct {
	s *Store
}

func (c committed) read(ctx context.Context, op string, fn func(*state) error) error {
	if err := c.s.check(ctx, op); err != nil {
		return err
	}
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return fn(c.s.data)
}

func (c committed) write(ctx context.Context, op string, fn func(*state) error) error {
	if err := c.s.check(ctx, op); err != nil {
		return err
	}
	if err := c.s.acquire(ctx); err != nil {
		return err
	}
	defer c.s.release()

	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	next := c.s.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	c.s.data = next
	return nil
}

// Transaction works on a private snapshot published on commit. A nested
// transaction publishes into its parent.
type Transaction struct {
	store  *Store
	parent *Transaction

	mu   sync.Mutex
	data *state
	done bool
}

func (t *Transaction) Stores() model.Stores {
	return storesFor(t)
}

func (t *Transaction) read(ctx context.Context, op string, fn func(*state) error) error {
	if err := t.store.check(ctx, op); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return model.ErrTransactionFinished
	}
	return fn(t.data)
}

func (t *Transaction) write(ctx context.Context, op string, fn func(*state) error) error {
	if err := t.store.check(ctx, op); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return model.ErrTransactionFinished
	}
	next := t.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	t.data = next
	return nil
}

func (t *Transaction) Savepoint(ctx context.Context) (model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil, model.ErrTransactionFinished
	}
	return &Transaction{store: t.store, parent: t, data: t.data.clone()}, nil
}

func (t *Transaction) Commit(ctx context.Context) error {
	if err := t.store.check(ctx, "Commit"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return model.ErrTransactionFinished
	}

	if t.parent != nil {
		t.parent.mu.Lock()
		defer t.parent.mu.Unlock()
		if t.parent.done {
			return model.ErrTransactionFinished
		}
		t.parent.data = t.data
	} else {
		t.store.mu.Lock()
		t.store.data = t.data
		t.store.mu.Unlock()
		t.store.release()
	}
	t.done = true
	return nil
}

func (t *Transaction) Rollback(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	if t.parent == nil {
		t.store.release()
	}
	return nil
}
