package server

import (
	"encoding/json"
	"net/http"

	"AirFM/core/media"
	"AirFM/logger"
)

// CatalogHandler serves the track listing and the service descriptor.
type CatalogHandler struct {
	lib *media.Library
}

// NewCatalogHandler creates a CatalogHandler instance.
func NewCatalogHandler(lib *media.Library) *CatalogHandler {
	return &CatalogHandler{lib: lib}
}

// ListTracksHandler returns every streamable file in the library as a
// JSON array sorted by filename. The catalog is rescanned on each call;
// nothing is cached between requests.
func (h *CatalogHandler) ListTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.lib.List()
	if err != nil {
		logger.Error("failed to list tracks",
			logger.String("requestId", RequestID(r.Context())),
			logger.ErrorField(err))
		http.Error(w, "Failed to list tracks", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, tracks)
}

// IndexHandler returns a small descriptor of the service endpoints.
func (h *CatalogHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":        "AirFM audio server running",
		"list":           "/tracks",
		"stream_pattern": "/stream/{filename}",
	})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}
