package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/middleware"
	"tryon/internal/providers/serpapi"
	"tryon/internal/storage"
	"tryon/internal/tryon"
)

// OutfitSearcher is the image-search collaborator contract.
type OutfitSearcher interface {
	SearchOutfits(ctx context.Context, q serpapi.Query) ([]serpapi.Outfit, error)
}

// App bundles the handler dependencies.
type App struct {
	Jobs         domain.JobRepository
	Orchestrator *tryon.Orchestrator
	Search       OutfitSearcher
	Store        *storage.FileStore
	Config       *infra.Config
	Logger       infra.Logger
}

func NewApp(jobs domain.JobRepository, orchestrator *tryon.Orchestrator, search OutfitSearcher, store *storage.FileStore, cfg *infra.Config, logger infra.Logger) *App {
	return &App{
		Jobs:         jobs,
		Orchestrator: orchestrator,
		Search:       search,
		Store:        store,
		Config:       cfg,
		Logger:       logger,
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}
