package domain

import "time"

// JobStatus enumerates try-on job lifecycle states. Transitions are
// one-directional: queued -> running -> succeeded | failed.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// BodyMetrics carries optional body-measurement estimates supplied by the
// client. All values are advisory; scoring tolerates out-of-range input.
type BodyMetrics struct {
	ScaleFactor   float64 `json:"scale_factor"`
	ShoulderWidth float64 `json:"shoulder_width"`
	Waist         float64 `json:"waist"`
	Hip           float64 `json:"hip"`
}

// TryOnJob is the lifecycle record for one user-initiated try-on request.
// The orchestrator is the sole writer; clients only ever read it.
type TryOnJob struct {
	ID             string
	UserID         string
	InputImageURL  string
	OutfitImageURL string
	Metrics        *BodyMetrics
	Status         JobStatus
	ResultURL      string
	FitScore       *float64
	Notes          string
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
