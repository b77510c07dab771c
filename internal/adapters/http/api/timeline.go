// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/campuspulse/campuspulse/internal/domain/occupancy"
)

// TimelineDependencies defines the interface for timeline queries.
type TimelineDependencies interface {
	Timeline(ctx context.Context, date string) ([]occupancy.TimelinePoint, error)
}

// TimelineHandler handles timeline requests.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// HandleGetTimeline handles GET /timeline?date=YYYY-MM-DD requests. A date
// with no data is an empty array, not an error.
func (h *TimelineHandler) HandleGetTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	points, err := h.deps.Timeline(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if points == nil {
		points = []occupancy.TimelinePoint{}
	}
	writeJSON(w, http.StatusOK, points)
}
