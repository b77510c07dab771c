// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuspulse/campuspulse/internal/adapters/repository"
	"github.com/campuspulse/campuspulse/internal/app"
	"github.com/campuspulse/campuspulse/internal/domain/model"
	"github.com/campuspulse/campuspulse/internal/domain/occupancy"
	"github.com/campuspulse/campuspulse/internal/domain/resolve"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ResolveQuery classifies a free-text or shorthand building query.
	ResolveQuery(ctx context.Context, query string) (resolve.Result, error)

	// ExpandSensorCode maps a sensor code onto its display codes.
	ExpandSensorCode(ctx context.Context, code string) ([]string, error)

	// Heatmap returns per-building counts for one time slice.
	Heatmap(ctx context.Context, date, hour, minute string) ([]model.DisplayCount, error)

	// Timeline returns one date's aggregated occupancy series.
	Timeline(ctx context.Context, date string) ([]occupancy.TimelinePoint, error)

	// Metadata describes the loaded data set.
	Metadata(ctx context.Context) (app.Metadata, error)
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	metadataHandler *MetadataHandler
	heatmapHandler  *HeatmapHandler
	timelineHandler *TimelineHandler
	resolveHandler  *ResolveHandler
	statsHandler    *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		metadataHandler: NewMetadataHandler(deps),
		heatmapHandler:  NewHeatmapHandler(deps),
		timelineHandler: NewTimelineHandler(deps),
		resolveHandler:  NewResolveHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metadata", wrap(s.metadataHandler.HandleGetMetadata, "metadata"))
	mux.HandleFunc("/heatmap", wrap(s.heatmapHandler.HandleGetHeatmap, "heatmap"))
	mux.HandleFunc("/timeline", wrap(s.timelineHandler.HandleGetTimeline, "timeline"))
	mux.HandleFunc("/resolve/", wrap(s.resolveHandler.HandleGetResolve, "resolve"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
}

// wrap applies the standard middleware stack to a handler.
func wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(CORSMiddleware(MetricsMiddleware(next, endpoint)))
}

// buildingResponse is the wire shape of one building record.
type buildingResponse struct {
	DisplayCode string  `json:"display_code"`
	SensorCode  string  `json:"sensor_code,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

func toBuildingResponse(r model.BuildingRecord) buildingResponse {
	return buildingResponse{
		DisplayCode: r.DisplayCode,
		SensorCode:  r.SensorCode,
		Name:        r.Name,
		Category:    r.Category.String(),
		Lat:         r.Centroid.Lat,
		Lng:         r.Centroid.Lng,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service errors to HTTP statuses: a bad
// selector is the caller's fault, an unloaded store means the service is
// still starting, anything else is internal.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, repository.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
