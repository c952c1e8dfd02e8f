package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

// JobService exposes async job statuses.
type JobService struct {
	repo ports.Repository
	log  *slog.Logger
}

func NewJobService(repo ports.Repository, log *slog.Logger) *JobService {
	return &JobService{repo: repo, log: log}
}

// JobQuery filters job listings. OwnerKey is resolved to the owner id.
type JobQuery struct {
	IDs      []string
	Keys     []string
	States   []domain.JobState
	OwnerKey string
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.AsyncJobStatus, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *JobService) List(ctx context.Context, q JobQuery) ([]*domain.AsyncJobStatus, error) {
	f := ports.JobFilter{IDs: q.IDs, Keys: q.Keys, States: q.States}
	if q.OwnerKey != "" {
		owner, err := s.repo.GetOwnerByKey(ctx, q.OwnerKey)
		if err != nil {
			return nil, err
		}
		f.OwnerID = owner.ID
	}
	return s.repo.ListJobs(ctx, f)
}

// Cancel moves a job to CANCELED. Terminal jobs cannot be canceled.
func (s *JobService) Cancel(ctx context.Context, id string) (*domain.AsyncJobStatus, error) {
	j, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := j.SetState(domain.JobCanceled); err != nil {
		return nil, err
	}
	t := now()
	j.EndTime = &t
	j.Updated = t
	if err := s.repo.SaveJob(ctx, j); err != nil {
		return nil, err
	}
	s.log.Info("job canceled", "job_id", id, "previous_state", j.PreviousState)
	return j, nil
}

// ExportJobKey identifies manifest export jobs.
const ExportJobKey = "ExportJob"

// ExportOptions are the caller-supplied manifest settings.
type ExportOptions struct {
	CdnLabel string
	WebURL   string
	APIURL   string
}

// ExportService writes manifests for distributor consumers and records each
// run as an async job.
type ExportService struct {
	repo   ports.Repository
	writer ports.ManifestWriter
	jobs   jobRecorder
	log    *slog.Logger
	emitter
}

func NewExportService(repo ports.Repository, writer ports.ManifestWriter, events ports.EventPublisher, log *slog.Logger) *ExportService {
	return &ExportService{repo: repo, writer: writer, jobs: jobRecorder{repo}, log: log, emitter: emitter{events, log}}
}

// Export writes the manifest of a consumer into w. The returned job is in a
// terminal state whether or not the export succeeded.
func (s *ExportService) Export(ctx context.Context, consumerUUID string, opts ExportOptions, w io.Writer) (*domain.AsyncJobStatus, error) {
	principal := PrincipalFrom(ctx)
	job := newJob(ExportJobKey, "Export Manifest", principal)

	var count int
	runErr, err := s.jobs.run(ctx, job, func() (any, error) {
		var err error
		count, err = s.run(ctx, job, consumerUUID, opts, principal.Name, w)
		return map[string]any{"consumer": consumerUUID, "entitlements": count}, err
	})
	if err != nil {
		return nil, err
	}

	log := s.log.With("job_id", job.ID, "consumer", consumerUUID)
	if runErr != nil {
		log.Warn("manifest export failed", "error", runErr)
		return job, runErr
	}
	log.Info("manifest exported", "entitlements", count)
	s.emit(ctx, eventInfo{typ: domain.EventCreated, target: domain.TargetExport, entityID: job.ID, ownerID: job.OwnerID, consumerUUID: consumerUUID})
	return job, nil
}

func (s *ExportService) run(ctx context.Context, job *domain.AsyncJobStatus, consumerUUID string, opts ExportOptions, principal string, w io.Writer) (int, error) {
	var (
		consumer *domain.Consumer
		ents     []*domain.Entitlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		consumer, err = s.repo.GetConsumer(gctx, consumerUUID)
		return err
	})
	g.Go(func() error {
		var err error
		ents, err = s.repo.ListEntitlements(gctx, consumerUUID)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	job.OwnerID = consumer.OwnerID()
	if !consumer.IsManifest() {
		return 0, domain.NewForbiddenError("consumer " + consumerUUID + " cannot export manifests")
	}

	bundle := &ports.ManifestBundle{
		Consumer:     consumer,
		Entitlements: ents,
		Principal:    principal,
		CdnLabel:     opts.CdnLabel,
		WebURL:       opts.WebURL,
		APIURL:       opts.APIURL,
		Created:      now(),
	}
	if err := s.writer.Write(ctx, w, bundle); err != nil {
		return 0, err
	}
	return len(ents), nil
}

func newJob(key, name string, principal *Principal) *domain.AsyncJobStatus {
	return &domain.AsyncJobStatus{
		ID:          newID(),
		JobKey:      key,
		Name:        name,
		Origin:      "candlepin",
		Principal:   principal.Name,
		MaxAttempts: 1,
		Created:     now(),
		Updated:     now(),
	}
}

// jobRecorder walks a job through CREATED, QUEUED and RUNNING, runs the work
// and records FINISHED or FAILED.
type jobRecorder struct {
	repo ports.JobRepository
}

// run returns the work's error and, separately, any error that kept the job
// from being recorded.
func (r jobRecorder) run(ctx context.Context, job *domain.AsyncJobStatus, work func() (any, error)) (workErr, recordErr error) {
	if err := r.advance(ctx, job, domain.JobCreated); err != nil {
		return nil, err
	}
	if err := r.advance(ctx, job, domain.JobQueued); err != nil {
		return nil, err
	}

	start := now()
	job.StartTime = &start
	job.Attempts++
	if err := r.advance(ctx, job, domain.JobRunning); err != nil {
		return nil, err
	}

	result, runErr := work()

	end := now()
	job.EndTime = &end
	next := domain.JobFinished
	if runErr != nil {
		next = domain.JobFailed
		job.Result = runErr.Error()
	} else {
		res, _ := json.Marshal(result)
		job.Result = string(res)
	}
	// The outcome is recorded even when the request context is gone.
	if err := r.advance(context.WithoutCancel(ctx), job, next); err != nil {
		return runErr, err
	}
	return runErr, nil
}

func (r jobRecorder) advance(ctx context.Context, job *domain.AsyncJobStatus, next domain.JobState) error {
	if err := job.SetState(next); err != nil {
		return err
	}
	job.Updated = now()
	return r.repo.SaveJob(ctx, job)
}
