package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "expected", Expected.String())
	assert.Equal(t, "unexpected", Unexpected.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestResult_Reported(t *testing.T) {
	assert.False(t, Result{Outcome: Passed}.Reported())
	assert.False(t, Result{Outcome: Expected}.Reported())
	assert.True(t, Result{Outcome: Unexpected}.Reported())
}

func TestSummary_Add(t *testing.T) {
	var s Summary

	s.Add(Result{Outcome: Passed})
	s.Add(Result{Outcome: Expected, TimedOut: true})
	s.Add(Result{Outcome: Unexpected, TimedOut: true})
	s.Add(Result{Outcome: Unexpected})

	assert.Equal(t, Summary{Total: 4, Passed: 1, Expected: 1, Unexpected: 2, TimedOut: 2}, s)
}
