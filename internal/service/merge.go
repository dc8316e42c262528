package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/metrics"
	"github.com/dtroode/identity-merge/internal/model"
)

// MergeOptions tunes the merge algorithm.
type MergeOptions struct {
	// MergeUnconfirmedEmails copies the source primary email even when unconfirmed.
	MergeUnconfirmedEmails bool
	// CollectAllFailures runs every step in a savepoint and reports all failures.
	CollectAllFailures bool
	// HookFailureFatal makes a failing completion hook abort the merge.
	HookFailureFatal bool
	// Timeout bounds the whole merge transaction. Zero means no bound.
	Timeout time.Duration
}

// Merger folds a source account into a target account in one transaction.
type Merger struct {
	uow    model.UnitOfWork
	hook   model.MergeHook
	opts   MergeOptions
	logger *logger.Logger
}

func NewMerger(uow model.UnitOfWork, hook model.MergeHook, opts MergeOptions, logger *logger.Logger) (*Merger, error) {
	if err := requireEmails(uow); err != nil {
		return nil, err
	}
	if hook == nil {
		hook = NoopHook{}
	}
	return &Merger{
		uow:    uow,
		hook:   hook,
		opts:   opts,
		logger: logger,
	}, nil
}

// sourceSnapshot is the source state read before any step runs.
type sourceSnapshot struct {
	account model.Account
	roles   []string
	logins  []model.LoginEmail
	claims  []model.Claim
	emails  []model.EmailInfo
}

// Merge moves roles, logins, emails and claims of source onto target and
// deletes source. Either every change commits or none does.
func (m *Merger) Merge(ctx context.Context, targetID, sourceID uuid.UUID) (model.MergeResult, error) {
	start := time.Now()

	if targetID == sourceID {
		m.logger.Info("Merge service: accounts are already merged",
			"account_id", targetID)
		metrics.RecordMerge(metrics.OutcomeAlreadyMerged, time.Since(start))
		return model.MergeResult{
			Status:   model.MergeStatusAlreadyMerged,
			TargetID: targetID,
			SourceID: sourceID,
		}, nil
	}

	m.logger.Debug("Merge service: starting merge",
		"target_id", targetID,
		"source_id", sourceID)

	if m.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
		defer cancel()
	}

	tx, err := m.uow.Begin(ctx)
	if err != nil {
		err = contextError(ctx, fmt.Errorf("failed to begin merge transaction: %w", err))
		m.fail(targetID, sourceID, start, err)
		return model.MergeResult{}, err
	}

	result, err := m.run(ctx, tx, targetID, sourceID)
	if err == nil {
		err = tx.Commit(ctx)
		if err != nil {
			err = fmt.Errorf("failed to commit merge: %w", err)
		}
	}
	if err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			m.logger.Error("Merge service: failed to roll back merge",
				"target_id", targetID,
				"source_id", sourceID,
				"error", rbErr.Error())
		}
		err = contextError(ctx, err)
		m.fail(targetID, sourceID, start, err)
		return model.MergeResult{}, err
	}

	result.Steps = append(result.Steps, model.StepResult{Step: model.StepCommit})
	metrics.RecordMerge(metrics.OutcomeMerged, time.Since(start))
	m.logger.Info("Merge service: accounts merged successfully",
		"target_id", targetID,
		"source_id", sourceID,
		"duration", time.Since(start))

	return result, nil
}

func (m *Merger) fail(targetID, sourceID uuid.UUID, start time.Time, err error) {
	outcome := metrics.OutcomeFailed
	switch {
	case errors.Is(err, model.ErrTransactionTimeout):
		outcome = metrics.OutcomeTimeout
	case errors.Is(err, model.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	}
	metrics.RecordMerge(outcome, time.Since(start))

	m.logger.Error("Merge service: merge failed",
		"target_id", targetID,
		"source_id", sourceID,
		"outcome", outcome,
		"error", err.Error())
}

func (m *Merger) load(ctx context.Context, stores model.Stores, targetID, sourceID uuid.UUID) (model.Account, sourceSnapshot, error) {
	target, err := stores.Accounts.FindByID(ctx, targetID)
	if err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to load target account %s: %w", targetID, err)
	}

	var src sourceSnapshot
	src.account, err = stores.Accounts.FindByID(ctx, sourceID)
	if err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to load source account %s: %w", sourceID, err)
	}
	if src.roles, err = stores.Accounts.GetRoles(ctx, sourceID); err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to get source roles: %w", err)
	}
	if src.logins, err = loginsWithEmails(ctx, stores, sourceID); err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to get source logins: %w", err)
	}
	if src.claims, err = stores.Accounts.GetClaims(ctx, sourceID); err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to get source claims: %w", err)
	}
	if src.emails, err = stores.Emails.GetEmails(ctx, sourceID, nil); err != nil {
		return model.Account{}, sourceSnapshot{}, fmt.Errorf("failed to get source emails: %w", err)
	}
	return target, src, nil
}

func (m *Merger) run(ctx context.Context, tx model.Transaction, targetID, sourceID uuid.UUID) (model.MergeResult, error) {
	stores := tx.Stores()
	if stores.Emails == nil {
		return model.MergeResult{}, model.ErrEmailsUnsupported
	}

	target, src, err := m.load(ctx, stores, targetID, sourceID)
	if err != nil {
		return model.MergeResult{}, err
	}

	outcomes := NewOutcomes(m.opts.CollectAllFailures)
	observe := func(step model.MergeStep, fn func(s model.Stores) error) error {
		return outcomes.Observe(step, func() error {
			err := m.step(ctx, tx, stores, fn)
			metrics.RecordMergeStep(string(step), err)
			if err != nil {
				m.logger.Warn("Merge service: merge step failed",
					"step", step,
					"target_id", targetID,
					"source_id", sourceID,
					"error", err.Error())
			}
			return err
		})
	}

	event := model.MergeEvent{
		ID:     uuid.New(),
		Target: target,
		Source: src.account,
	}

	// 1. roles
	targetRoles, err := stores.Accounts.GetRoles(ctx, targetID)
	if err != nil {
		return model.MergeResult{}, fmt.Errorf("failed to get target roles: %w", err)
	}
	event.Roles = missingRoles(src.roles, targetRoles)
	if err := observe(model.StepRoles, func(s model.Stores) error {
		return s.Accounts.AddToRoles(ctx, targetID, event.Roles)
	}); err != nil {
		return model.MergeResult{}, err
	}

	// 2. logins with their bound emails
	for _, le := range src.logins {
		if err := observe(model.StepLogins, func(s model.Stores) error {
			return moveLogin(ctx, s, sourceID, targetID, le)
		}); err != nil {
			return model.MergeResult{}, err
		}
		event.Logins = append(event.Logins, le.Login)
		if le.Email != nil {
			event.Emails = append(event.Emails, *le.Email)
		}
	}

	// 3. standalone emails
	for _, e := range standaloneEmails(src.emails, src.logins) {
		if err := observe(model.StepEmails, func(s model.Stores) error {
			return s.Emails.AddEmail(ctx, targetID, e, nil)
		}); err != nil {
			return model.MergeResult{}, err
		}
		event.Emails = append(event.Emails, e)
	}

	// 4. primary email
	if src.account.Email != "" && (m.opts.MergeUnconfirmedEmails || src.account.EmailConfirmed) {
		if err := observe(model.StepPrimaryEmail, func(s model.Stores) error {
			return s.Emails.AddEmail(ctx, targetID, src.account.Email, nil)
		}); err != nil {
			return model.MergeResult{}, err
		}
		event.Emails = append(event.Emails, src.account.Email)
	}

	// 5. claims
	targetClaims, err := stores.Accounts.GetClaims(ctx, targetID)
	if err != nil {
		return model.MergeResult{}, fmt.Errorf("failed to get target claims: %w", err)
	}
	event.Claims = missingClaims(src.claims, targetClaims)
	if err := observe(model.StepClaims, func(s model.Stores) error {
		return s.Accounts.AddClaims(ctx, targetID, event.Claims)
	}); err != nil {
		return model.MergeResult{}, err
	}

	// 6. source
	if err := observe(model.StepDeleteSource, func(s model.Stores) error {
		return s.Accounts.Delete(ctx, sourceID)
	}); err != nil {
		return model.MergeResult{}, err
	}

	// Collected failures roll everything back, so the hook must not see this merge.
	if err := outcomes.Err(); err != nil {
		return model.MergeResult{}, err
	}

	// 7. hook
	event.MergedAt = time.Now()
	result := model.MergeResult{
		Status:   model.MergeStatusMerged,
		TargetID: targetID,
		SourceID: sourceID,
	}
	if m.opts.HookFailureFatal {
		if err := observe(model.StepHook, func(model.Stores) error {
			return m.hook.Merged(ctx, event)
		}); err != nil {
			return model.MergeResult{}, err
		}
	} else if err := m.hook.Merged(ctx, event); err != nil {
		metrics.MergeHookFailures.Inc()
		m.logger.Warn("Merge service: completion hook failed",
			"target_id", targetID,
			"source_id", sourceID,
			"error", err.Error())
		result.HookErr = err
	}

	if err := outcomes.Err(); err != nil {
		return model.MergeResult{}, err
	}

	result.Steps = outcomes.Results()
	return result, nil
}

// step runs fn directly in fail-fast mode, or inside a savepoint when every
// failure is collected so a failed step leaves nothing behind.
func (m *Merger) step(ctx context.Context, tx model.Transaction, stores model.Stores, fn func(model.Stores) error) error {
	if !m.opts.CollectAllFailures {
		return fn(stores)
	}

	sp, err := tx.Savepoint(ctx)
	if err != nil {
		return err
	}
	if err := fn(sp.Stores()); err != nil {
		_ = rollback(ctx, sp)
		return err
	}
	return sp.Commit(ctx)
}

func moveLogin(ctx context.Context, s model.Stores, sourceID, targetID uuid.UUID, le model.LoginEmail) error {
	login := le.Login
	if err := s.Emails.RemoveEmail(ctx, sourceID, login.Provider, login.ProviderKey); err != nil {
		return err
	}
	if err := s.Accounts.RemoveLogin(ctx, sourceID, login.Provider, login.ProviderKey); err != nil {
		return err
	}
	if err := s.Accounts.AddLogin(ctx, targetID, login); err != nil {
		return err
	}
	if le.Email != nil {
		return s.Emails.AddEmail(ctx, targetID, *le.Email, &login)
	}
	return nil
}

func missingRoles(source, target []string) []string {
	have := make(map[string]struct{}, len(target))
	for _, r := range target {
		have[r] = struct{}{}
	}
	missing := make([]string, 0, len(source))
	for _, r := range source {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// missingClaims returns source claims absent from target, each case-insensitive
// (type, value) pair at most once.
func missingClaims(source, target []model.Claim) []model.Claim {
	missing := make([]model.Claim, 0, len(source))
	for _, c := range source {
		if !containsClaim(target, c) && !containsClaim(missing, c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func containsClaim(claims []model.Claim, c model.Claim) bool {
	for _, other := range claims {
		if c.EqualFold(other) {
			return true
		}
	}
	return false
}

// standaloneEmails returns unbound records whose email is not carried by a login.
func standaloneEmails(emails []model.EmailInfo, logins []model.LoginEmail) []string {
	var out []string
	for _, e := range emails {
		if e.Login != nil {
			continue
		}
		covered := false
		for _, l := range logins {
			if l.Email != nil && strings.EqualFold(*l.Email, e.Email) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, e.Email)
		}
	}
	return out
}
