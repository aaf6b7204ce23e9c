package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tryon/internal/domain"
)

// TryOnJobRepositoryPG implements domain.JobRepository on PostgreSQL.
type TryOnJobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTryOnJobRepository creates a job repository backed by the given pool.
func NewTryOnJobRepository(pool *pgxpool.Pool) *TryOnJobRepositoryPG {
	return &TryOnJobRepositoryPG{pool: pool}
}

// Create inserts a new job record in its initial state.
func (r *TryOnJobRepositoryPG) Create(ctx context.Context, job *domain.TryOnJob) error {
	query := `
INSERT INTO try_on_jobs (id, user_id, input_image_url, outfit_image_url, metrics, status)
VALUES ($1, $2, $3, $4, $5, $6);
`
	metrics, err := encodeMetrics(job.Metrics)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.InputImageURL,
		job.OutfitImageURL,
		metrics,
		job.Status,
	)
	return err
}

// GetByID fetches a job by its identifier.
func (r *TryOnJobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.TryOnJob, error) {
	row := r.pool.QueryRow(ctx, selectJob+`WHERE id = $1;`, jobID)
	return scanJob(row)
}

// GetByIDForUser fetches a job only when it belongs to the given user.
func (r *TryOnJobRepositoryPG) GetByIDForUser(ctx context.Context, jobID, userID string) (*domain.TryOnJob, error) {
	row := r.pool.QueryRow(ctx, selectJob+`WHERE id = $1 AND user_id = $2;`, jobID, userID)
	return scanJob(row)
}

// MarkRunning transitions the job out of the queued state.
func (r *TryOnJobRepositoryPG) MarkRunning(ctx context.Context, jobID string) error {
	query := `
UPDATE try_on_jobs
SET status = $2, updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, jobID, domain.JobStatusRunning)
	return err
}

// MarkSucceeded writes the terminal succeeded field-set.
func (r *TryOnJobRepositoryPG) MarkSucceeded(ctx context.Context, jobID string, result domain.TryOnResult) error {
	query := `
UPDATE try_on_jobs
SET status = $2,
    result_url = $3,
    fit_score = $4,
    notes = $5,
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, jobID, domain.JobStatusSucceeded, result.ResultURL, result.FitScore, result.Notes)
	return err
}

// MarkFailed writes the terminal failed field-set.
func (r *TryOnJobRepositoryPG) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	query := `
UPDATE try_on_jobs
SET status = $2,
    error_message = $3,
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, jobID, domain.JobStatusFailed, errMsg)
	return err
}

const selectJob = `
SELECT id, user_id, input_image_url, outfit_image_url, metrics, status, result_url, fit_score, notes, error_message, created_at, updated_at
FROM try_on_jobs
`

func scanJob(row pgx.Row) (*domain.TryOnJob, error) {
	var job domain.TryOnJob
	var metrics []byte
	var resultURL, notes, errMsg *string
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.InputImageURL,
		&job.OutfitImageURL,
		&metrics,
		&job.Status,
		&resultURL,
		&job.FitScore,
		&notes,
		&errMsg,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(metrics) > 0 {
		var m domain.BodyMetrics
		if err := json.Unmarshal(metrics, &m); err != nil {
			return nil, err
		}
		job.Metrics = &m
	}
	if resultURL != nil {
		job.ResultURL = *resultURL
	}
	if notes != nil {
		job.Notes = *notes
	}
	if errMsg != nil {
		job.ErrorMessage = *errMsg
	}
	return &job, nil
}

func encodeMetrics(m *domain.BodyMetrics) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
