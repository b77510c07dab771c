// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/campuspulse/campuspulse/internal/domain/model"
)

// HeatmapDependencies defines the interface for heatmap queries.
type HeatmapDependencies interface {
	Heatmap(ctx context.Context, date, hour, minute string) ([]model.DisplayCount, error)
}

// HeatmapHandler handles heatmap requests.
type HeatmapHandler struct {
	deps HeatmapDependencies
}

// NewHeatmapHandler creates a new heatmap handler.
func NewHeatmapHandler(deps HeatmapDependencies) *HeatmapHandler {
	return &HeatmapHandler{deps: deps}
}

// HandleGetHeatmap handles GET /heatmap?date=YYYY-MM-DD&hour=H&minute=M
// requests. Every building appears in the response; buildings without an
// observation in the slice carry a zero count.
func (h *HeatmapHandler) HandleGetHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	counts, err := h.deps.Heatmap(r.Context(), q.Get("date"), q.Get("hour"), q.Get("minute"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
