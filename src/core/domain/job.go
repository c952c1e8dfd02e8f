package domain

import (
	"fmt"
	"time"
)

// JobState is the lifecycle state of an asynchronous job.
type JobState string

const (
	JobCreated         JobState = "CREATED"
	JobWaiting         JobState = "WAITING"
	JobScheduled       JobState = "SCHEDULED"
	JobQueued          JobState = "QUEUED"
	JobRunning         JobState = "RUNNING"
	JobFailedWithRetry JobState = "FAILED_WITH_RETRY"
	JobFinished        JobState = "FINISHED"
	JobFailed          JobState = "FAILED"
	JobCanceled        JobState = "CANCELED"
	JobAborted         JobState = "ABORTED"
)

var jobTransitions = map[JobState][]JobState{
	JobCreated:         {JobWaiting, JobScheduled, JobQueued, JobRunning, JobCanceled, JobAborted},
	JobWaiting:         {JobScheduled, JobQueued, JobRunning, JobCanceled, JobAborted},
	JobScheduled:       {JobQueued, JobRunning, JobCanceled, JobAborted},
	JobQueued:          {JobRunning, JobCanceled},
	JobRunning:         {JobFailed, JobFailedWithRetry, JobFinished, JobCanceled},
	JobFailedWithRetry: {JobScheduled, JobQueued, JobRunning, JobCanceled},
}

// IsTerminal reports whether no further transitions are possible.
func (s JobState) IsTerminal() bool {
	return len(jobTransitions[s]) == 0
}

// CanTransition reports whether moving from s to next is allowed.
func (s JobState) CanTransition(next JobState) bool {
	for _, t := range jobTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// AsyncJobStatus records a job execution.
type AsyncJobStatus struct {
	ID            string
	JobKey        string
	Name          string
	Group         string
	Origin        string
	Executor      string
	Principal     string
	OwnerID       string
	State         JobState
	PreviousState JobState
	Attempts      int
	MaxAttempts   int
	StartTime     *time.Time
	EndTime       *time.Time
	Result        string
	Created       time.Time
	Updated       time.Time
}

// SetState moves the job to next, recording the previous state.
func (j *AsyncJobStatus) SetState(next JobState) error {
	if j.State != "" && !j.State.CanTransition(next) {
		return NewConflictError(fmt.Sprintf("job %s cannot move from %s to %s", j.ID, j.State, next))
	}
	j.PreviousState = j.State
	j.State = next
	return nil
}
