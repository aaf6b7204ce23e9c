package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tryon/internal/domain"
	"tryon/internal/tryon"
)

type tryOnSubmitRequest struct {
	InputImageURL  string              `json:"input_image_url"`
	OutfitImageURL string              `json:"outfit_image_url"`
	Metrics        *domain.BodyMetrics `json:"metrics"`
}

type tryOnSubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type tryOnJobResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	InputImageURL  string              `json:"input_image_url"`
	OutfitImageURL string              `json:"outfit_image_url"`
	Metrics        *domain.BodyMetrics `json:"metrics,omitempty"`
	Status         string              `json:"status"`
	ResultURL      string              `json:"result_url,omitempty"`
	FitScore       *float64            `json:"fit_score,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Error          string              `json:"error,omitempty"`
	CreatedAt      string              `json:"created_at"`
	UpdatedAt      string              `json:"updated_at"`
}

// TryOnSubmit accepts a try-on request and returns its job id immediately.
// Processing continues after the response; progress is observable only through
// the job document.
func (a *App) TryOnSubmit(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
		return
	}
	var req tryOnSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid-argument", "invalid payload")
		return
	}

	jobID, err := a.Orchestrator.Submit(r.Context(), userID, tryon.SubmitInput{
		InputImageURL:  req.InputImageURL,
		OutfitImageURL: req.OutfitImageURL,
		Metrics:        req.Metrics,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
		case errors.Is(err, domain.ErrInvalidArgument):
			a.error(w, http.StatusBadRequest, "invalid-argument", err.Error())
		default:
			a.Logger.Error().Err(err).Msg("submit try-on job failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		}
		return
	}

	a.json(w, http.StatusAccepted, tryOnSubmitResponse{JobID: jobID, Status: string(domain.JobStatusQueued)})
}

// TryOnStatus returns the caller's job document. Clients poll this endpoint
// to observe the queued -> running -> terminal progression.
func (a *App) TryOnStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "invalid-argument", "job_id required")
		return
	}
	job, err := a.Jobs.GetByIDForUser(r.Context(), jobID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", jobID).Msg("load job failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}

	a.json(w, http.StatusOK, tryOnJobResponse{
		ID:             job.ID,
		UserID:         job.UserID,
		InputImageURL:  job.InputImageURL,
		OutfitImageURL: job.OutfitImageURL,
		Metrics:        job.Metrics,
		Status:         string(job.Status),
		ResultURL:      job.ResultURL,
		FitScore:       job.FitScore,
		Notes:          job.Notes,
		Error:          job.ErrorMessage,
		CreatedAt:      job.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt:      job.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
