package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tryon/internal/middleware"
	"tryon/internal/providers/serpapi"
)

type outfitSearchRequest struct {
	Query string `json:"query"`
}

type outfitSearchResponse struct {
	Query   string           `json:"query"`
	Outfits []serpapi.Outfit `json:"outfits"`
}

// OutfitsSearch proxies a free-text outfit query to the image search
// collaborator, localized by the caller's detected country and language.
func (a *App) OutfitsSearch(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
		return
	}
	var req outfitSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid-argument", "invalid payload")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		a.error(w, http.StatusBadRequest, "invalid-argument", "query is required")
		return
	}

	outfits, err := a.Search.SearchOutfits(r.Context(), serpapi.Query{
		Text:    query,
		Country: middleware.CountryFromContext(r.Context()),
		Locale:  middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, serpapi.ErrMissingAPIKey) {
			a.error(w, http.StatusServiceUnavailable, "not_configured", "outfit search is not configured")
			return
		}
		a.Logger.Error().Err(err).Str("query", query).Msg("outfit search failed")
		a.error(w, http.StatusBadGateway, "upstream", "outfit search failed")
		return
	}
	if outfits == nil {
		outfits = []serpapi.Outfit{}
	}

	a.json(w, http.StatusOK, outfitSearchResponse{Query: query, Outfits: outfits})
}
