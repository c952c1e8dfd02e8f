package repo

import (
	"context"
	"slices"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// Jobs

// SaveJob inserts the job or replaces the stored copy.
func (r *Repository) SaveJob(ctx context.Context, j *domain.AsyncJobStatus) error {
	err := r.jobs.update(ctx, j)
	if domain.IsNotFound(err) {
		r.log.Debug("job recorded", "job_id", j.ID, "key", j.JobKey)
		return r.jobs.insert(ctx, j)
	}
	return err
}

func (r *Repository) GetJob(ctx context.Context, id string) (*domain.AsyncJobStatus, error) {
	return r.jobs.get(ctx, id)
}

func (r *Repository) ListJobs(ctx context.Context, f ports.JobFilter) ([]*domain.AsyncJobStatus, error) {
	jobs, err := r.jobs.list(ctx, f.OwnerID)
	if err != nil {
		return nil, err
	}
	out := jobs[:0]
	for _, j := range jobs {
		if matchAny(f.IDs, j.ID) && matchAny(f.Keys, j.JobKey) && matchAny(f.States, j.State) {
			out = append(out, j)
		}
	}
	return out, nil
}

func matchAny[T comparable](want []T, v T) bool {
	return len(want) == 0 || slices.Contains(want, v)
}

// Events

func (r *Repository) CreateEvent(ctx context.Context, e *domain.Event) error {
	return r.events.insert(ctx, e)
}

// ListEvents returns the most recent events first. A non-positive limit
// returns all of them.
func (r *Repository) ListEvents(ctx context.Context, limit int) ([]*domain.Event, error) {
	events, err := r.events.list(ctx, "")
	if err != nil {
		return nil, err
	}
	slices.Reverse(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
