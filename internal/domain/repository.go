package domain

import "context"

// TryOnResult is the field-set written on a successful terminal transition.
type TryOnResult struct {
	ResultURL string
	FitScore  float64
	Notes     string
}

// JobRepository is the job store contract. Implementations must apply each
// mutation atomically per document and refresh updated_at on every write.
type JobRepository interface {
	Create(ctx context.Context, job *TryOnJob) error
	GetByID(ctx context.Context, jobID string) (*TryOnJob, error)
	GetByIDForUser(ctx context.Context, jobID, userID string) (*TryOnJob, error)
	MarkRunning(ctx context.Context, jobID string) error
	MarkSucceeded(ctx context.Context, jobID string, result TryOnResult) error
	MarkFailed(ctx context.Context, jobID string, errMsg string) error
}
