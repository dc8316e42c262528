package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MergeStep names one stage of a merge.
type MergeStep string

const (
	StepRoles        MergeStep = "roles"
	StepLogins       MergeStep = "logins"
	StepEmails       MergeStep = "emails"
	StepPrimaryEmail MergeStep = "primary_email"
	StepClaims       MergeStep = "claims"
	StepDeleteSource MergeStep = "delete_source"
	StepHook         MergeStep = "hook"
	StepCommit       MergeStep = "commit"
)

// StepResult is the recorded outcome of a single step.
type StepResult struct {
	Step MergeStep
	Err  error
}

// Failed reports whether the step failed.
func (r StepResult) Failed() bool {
	return r.Err != nil
}

// MergeStatus describes how a merge ended.
type MergeStatus int

const (
	MergeStatusMerged MergeStatus = iota + 1
	// MergeStatusAlreadyMerged is returned when target and source are the same account.
	MergeStatusAlreadyMerged
)

func (s MergeStatus) String() string {
	switch s {
	case MergeStatusMerged:
		return "merged"
	case MergeStatusAlreadyMerged:
		return "already_merged"
	default:
		return "unknown"
	}
}

// MergeResult is returned by a successful merge.
type MergeResult struct {
	Status   MergeStatus
	TargetID uuid.UUID
	SourceID uuid.UUID
	Steps    []StepResult
	// HookErr is a non-fatal completion hook failure.
	HookErr error
}

// MergeEvent is passed to completion hooks after the source account was deleted.
type MergeEvent struct {
	ID       uuid.UUID
	Target   Account
	Source   Account
	Roles    []string
	Logins   []LoginInfo
	Emails   []string
	Claims   []Claim
	MergedAt time.Time
}

// MergeHook is notified inside the merge transaction once the source is gone.
type MergeHook interface {
	Merged(ctx context.Context, event MergeEvent) error
}
