package handlers

import (
	"io"
	"net/http"
	"strings"

	"tryon/internal/storage"
)

const maxUploadBytes = 10 << 20

// UploadPhoto stores an uploaded person photo and returns the URL the try-on
// submission should reference.
func (a *App) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", "missing user context")
		return
	}
	if a.Store == nil {
		a.error(w, http.StatusServiceUnavailable, "not_configured", "uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "invalid-argument", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid-argument", "photo field is required")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		a.error(w, http.StatusBadRequest, "invalid-argument", "photo must be an image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid-argument", "failed to read photo")
		return
	}
	if len(data) == 0 {
		a.error(w, http.StatusBadRequest, "invalid-argument", "photo is empty")
		return
	}

	key := storage.UserUploadKey(userID, header.Filename)
	storedKey, err := a.Store.Write(r.Context(), key, data)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("store upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store photo")
		return
	}

	url := strings.TrimRight(a.Config.StorageBaseURL, "/") + "/" + storedKey
	a.json(w, http.StatusCreated, map[string]string{
		"url":         url,
		"storage_key": storedKey,
	})
}
