package service

import (
	"errors"

	"github.com/dtroode/identity-merge/internal/model"
)

// Outcomes records the results of a sequence of steps. In fail-fast mode
// Observe returns the aggregate as soon as a step fails; in collect-all mode
// it keeps going and the aggregate is read from Err at the end.
type Outcomes struct {
	collectAll bool
	results    []model.StepResult
}

func NewOutcomes(collectAll bool) *Outcomes {
	return &Outcomes{collectAll: collectAll}
}

// Observe runs fn and records its outcome.
func (o *Outcomes) Observe(step model.MergeStep, fn func() error) error {
	err := fn()
	o.results = append(o.results, model.StepResult{Step: step, Err: err})
	if err != nil && !o.collectAll {
		return o.Err()
	}
	return nil
}

func (o *Outcomes) HasFailures() bool {
	for _, r := range o.results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// Results returns a copy of every recorded outcome in order.
func (o *Outcomes) Results() []model.StepResult {
	return append([]model.StepResult(nil), o.results...)
}

// Err returns nil or an *model.AggregateError built from every failure so far.
func (o *Outcomes) Err() error {
	if !o.HasFailures() {
		return nil
	}
	agg := &model.AggregateError{}
	for _, r := range o.results {
		if r.Failed() {
			agg.Errors = append(agg.Errors, identityErrors(r)...)
		}
	}
	return agg
}

func identityErrors(r model.StepResult) []model.IdentityError {
	var nested *model.AggregateError
	if errors.As(r.Err, &nested) {
		return nested.Errors
	}
	return []model.IdentityError{{
		Code:        string(r.Step),
		Description: r.Err.Error(),
		Err:         r.Err,
	}}
}
