package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-merge/internal/model"
)

func TestOutcomes_FailFast(t *testing.T) {
	o := NewOutcomes(false)
	boom := errors.New("boom")

	require.NoError(t, o.Observe(model.StepRoles, func() error { return nil }))
	assert.False(t, o.HasFailures())
	assert.NoError(t, o.Err())

	err := o.Observe(model.StepLogins, func() error { return boom })
	require.Error(t, err)
	assert.True(t, o.HasFailures())

	var agg *model.AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 1)
	assert.Equal(t, "logins", agg.Errors[0].Code)
	assert.Equal(t, "logins: boom", agg.Error())
	assert.ErrorIs(t, err, boom)
}

func TestOutcomes_CollectAll(t *testing.T) {
	o := NewOutcomes(true)
	first := errors.New("first")
	second := errors.New("second")

	assert.NoError(t, o.Observe(model.StepRoles, func() error { return first }))
	assert.NoError(t, o.Observe(model.StepLogins, func() error { return nil }))
	assert.NoError(t, o.Observe(model.StepClaims, func() error { return second }))

	results := o.Results()
	require.Len(t, results, 3)
	assert.Equal(t, model.StepLogins, results[1].Step)
	assert.False(t, results[1].Failed())

	err := o.Err()
	require.Error(t, err)
	assert.Equal(t, "roles: first\nclaims: second", err.Error())
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestOutcomes_FlattensNestedAggregate(t *testing.T) {
	inner := NewOutcomes(true)
	_ = inner.Observe(model.StepLogins, func() error { return errors.New("duplicate login") })
	_ = inner.Observe(model.StepEmails, func() error { return errors.New("bad email") })

	o := NewOutcomes(false)
	err := o.Observe(model.StepLogins, inner.Err)

	var agg *model.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 2)
	assert.Equal(t, "emails", agg.Errors[1].Code)
}

func TestOutcomes_ResultsIsCopy(t *testing.T) {
	o := NewOutcomes(false)
	_ = o.Observe(model.StepRoles, func() error { return nil })

	results := o.Results()
	results[0].Step = model.StepClaims

	assert.Equal(t, model.StepRoles, o.Results()[0].Step)
}
