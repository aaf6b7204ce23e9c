// Package tryon drives the try-on job lifecycle: it accepts submissions,
// persists the queued document, and moves each job through
// running -> succeeded | failed in a detached task.
package tryon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/infra/metrics"
	"tryon/internal/providers/banana"
	"tryon/internal/scoring"
)

// Generator composites a garment image onto a person image and returns the
// result URL. Implemented by the banana client.
type Generator interface {
	Run(ctx context.Context, req banana.RunRequest) (string, error)
}

// SubmitInput is a validated try-on request.
type SubmitInput struct {
	InputImageURL  string
	OutfitImageURL string
	Metrics        *domain.BodyMetrics
}

// Orchestrator owns all writes to the job store. Completion is communicated
// solely through the job document; nothing flows back to the submitter.
type Orchestrator struct {
	jobs      domain.JobRepository
	generator Generator
	logger    infra.Logger
}

// NewOrchestrator wires the orchestrator's dependencies.
func NewOrchestrator(jobs domain.JobRepository, generator Generator, logger infra.Logger) *Orchestrator {
	return &Orchestrator{jobs: jobs, generator: generator, logger: logger}
}

// Submit validates the request, persists a queued job, and detaches its
// processing. The returned job id is available before generation starts; the
// call never blocks on completion. Validation failures abort before any
// document is created.
func (o *Orchestrator) Submit(ctx context.Context, userID string, in SubmitInput) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.InputImageURL) == "" {
		return "", fmt.Errorf("%w: input_image_url is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.OutfitImageURL) == "" {
		return "", fmt.Errorf("%w: outfit_image_url is required", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	job := &domain.TryOnJob{
		ID:             uuid.NewString(),
		UserID:         userID,
		InputImageURL:  strings.TrimSpace(in.InputImageURL),
		OutfitImageURL: strings.TrimSpace(in.OutfitImageURL),
		Metrics:        in.Metrics,
		Status:         domain.JobStatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := o.jobs.Create(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	metrics.IncJobSubmitted()
	o.logger.Info().Str("job_id", job.ID).Str("user_id", userID).Msg("try-on job queued")

	// Detached from the request context: the job outlives the submission call
	// and reports only through the store.
	go o.process(job.ID)

	return job.ID, nil
}

// process drives one job to a terminal state. Every error after the queued
// transition is captured on the document; nothing propagates to the caller.
func (o *Orchestrator) process(jobID string) {
	ctx := context.Background()

	job, err := o.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			o.logger.Debug().Str("job_id", jobID).Msg("job vanished before processing")
			return
		}
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("load job failed")
		return
	}

	if err := o.jobs.MarkRunning(ctx, jobID); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("mark running failed")
		return
	}

	resultURL, err := o.generator.Run(ctx, banana.RunRequest{
		PersonImageURL:  job.InputImageURL,
		GarmentImageURL: job.OutfitImageURL,
		Metrics:         job.Metrics,
	})
	if err != nil {
		o.fail(ctx, jobID, err)
		return
	}

	fitScore, notes := scoring.Score(job.Metrics)
	result := domain.TryOnResult{ResultURL: resultURL, FitScore: fitScore, Notes: notes}
	if err := o.jobs.MarkSucceeded(ctx, jobID, result); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("mark succeeded failed")
		return
	}
	metrics.IncJobProcessed(string(domain.JobStatusSucceeded))
	o.logger.Info().
		Str("job_id", jobID).
		Float64("fit_score", fitScore).
		Msg("try-on job succeeded")
}

func (o *Orchestrator) fail(ctx context.Context, jobID string, cause error) {
	if err := o.jobs.MarkFailed(ctx, jobID, cause.Error()); err != nil {
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("mark failed failed")
		return
	}
	metrics.IncJobProcessed(string(domain.JobStatusFailed))
	o.logger.Warn().Err(cause).Str("job_id", jobID).Msg("try-on job failed")
}
