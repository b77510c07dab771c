// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/campuspulse/campuspulse/internal/app"
)

// MetadataDependencies defines the interface for metadata lookups.
type MetadataDependencies interface {
	Metadata(ctx context.Context) (app.Metadata, error)
}

// MetadataHandler handles metadata requests.
type MetadataHandler struct {
	deps MetadataDependencies
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(deps MetadataDependencies) *MetadataHandler {
	return &MetadataHandler{deps: deps}
}

// HandleGetMetadata handles GET /metadata requests.
func (h *MetadataHandler) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	md, err := h.deps.Metadata(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}
