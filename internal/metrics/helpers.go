package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Merge outcomes.
const (
	OutcomeMerged        = "merged"
	OutcomeAlreadyMerged = "already_merged"
	OutcomeFailed        = "failed"
	OutcomeTimeout       = "timeout"
	OutcomeNotFound      = "not_found"
)

// RecordDBOperation records duration, status and error class of a repository call.
func RecordDBOperation(repo, operation string, duration time.Duration, err error) {
	DBDuration.WithLabelValues(repo, operation).Observe(duration.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		DBErrors.WithLabelValues(repo, operation, classifyDBError(err)).Inc()
	}
	DBOperations.WithLabelValues(repo, operation, status).Inc()
}

// RecordMergeStep counts a single observed merge step.
func RecordMergeStep(step string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	MergeSteps.WithLabelValues(step, status).Inc()
}

// RecordMerge records how a merge ended and how long it took.
func RecordMerge(outcome string, duration time.Duration) {
	Merges.WithLabelValues(outcome).Inc()
	MergeDuration.Observe(duration.Seconds())
}

func classifyDBError(err error) string {
	if errors.Is(err, pgx.ErrNoRows) {
		return "not_found"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "duplicate"
		case "23503":
			return "foreign_key"
		case "23502", "23514":
			return "constraint"
		case "40P01":
			return "deadlock"
		case "40001":
			return "serialization"
		}
		return "postgres"
	}
	return "other"
}
