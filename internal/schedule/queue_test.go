package schedule_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubble-flutter/internal/schedule"
)

func TestStepRunsPendingInOrder(t *testing.T) {
	q := schedule.NewQueue()
	var calls []int
	q.RequestFrame(func() error { calls = append(calls, 1); return nil })
	q.RequestFrame(func() error { calls = append(calls, 2); return nil })
	require.Equal(t, 2, q.Pending())

	require.NoError(t, q.Step())
	assert.Equal(t, []int{1, 2}, calls)
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, uint64(1), q.Frames())
}

func TestRequestDuringStepRunsNextStep(t *testing.T) {
	q := schedule.NewQueue()
	runs := 0
	var loop func() error
	loop = func() error {
		runs++
		q.RequestFrame(loop)
		return nil
	}
	q.RequestFrame(loop)

	require.NoError(t, q.Step())
	assert.Equal(t, 1, runs)
	require.NoError(t, q.Step())
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, q.Pending())
}

func TestCancelFrame(t *testing.T) {
	q := schedule.NewQueue()
	ran := false
	id := q.RequestFrame(func() error { ran = true; return nil })
	assert.NotZero(t, id)
	q.CancelFrame(id)

	require.NoError(t, q.Step())
	assert.False(t, ran)
	assert.Equal(t, 0, q.Pending())
}

func TestStepReturnsCallbackErrors(t *testing.T) {
	q := schedule.NewQueue()
	boom := errors.New("boom")
	ran := false
	q.RequestFrame(func() error { return boom })
	q.RequestFrame(func() error { ran = true; return nil })

	err := q.Step()
	require.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestEmptyStep(t *testing.T) {
	q := schedule.NewQueue()
	require.NoError(t, q.Step())
	assert.Equal(t, uint64(1), q.Frames())
}
