package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobState_Transitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to JobState
		ok       bool
	}{
		{JobCreated, JobQueued, true},
		{JobCreated, JobFinished, false},
		{JobWaiting, JobScheduled, true},
		{JobScheduled, JobWaiting, false},
		{JobQueued, JobRunning, true},
		{JobQueued, JobAborted, false},
		{JobRunning, JobFinished, true},
		{JobRunning, JobFailedWithRetry, true},
		{JobFailedWithRetry, JobQueued, true},
		{JobFailedWithRetry, JobFinished, false},
		{JobFinished, JobRunning, false},
		{JobCanceled, JobQueued, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	for _, s := range []JobState{JobFinished, JobFailed, JobCanceled, JobAborted} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, JobRunning.IsTerminal())
}

func TestAsyncJobStatus_SetState(t *testing.T) {
	t.Parallel()

	job := &AsyncJobStatus{ID: "j1"}
	require.NoError(t, job.SetState(JobCreated))
	require.NoError(t, job.SetState(JobQueued))
	require.NoError(t, job.SetState(JobRunning))
	assert.Equal(t, JobQueued, job.PreviousState)

	err := job.SetState(JobQueued)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, JobRunning, job.State, "rejected transition leaves the state alone")

	require.NoError(t, job.SetState(JobFinished))
	assert.True(t, job.State.IsTerminal())
}
