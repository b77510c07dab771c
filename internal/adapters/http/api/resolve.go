// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/campuspulse/campuspulse/internal/domain/resolve"
)

// ResolveDependencies defines the interface for query resolution.
type ResolveDependencies interface {
	ResolveQuery(ctx context.Context, query string) (resolve.Result, error)
}

// ResolveHandler handles building resolution requests.
type ResolveHandler struct {
	deps ResolveDependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps ResolveDependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// resolveResponse is the wire shape of a resolution outcome. Building is
// present for "exact", Suggestions for "suggestions"; a "none" match is a
// normal 200, not an error.
type resolveResponse struct {
	Match       string             `json:"match"`
	Building    *buildingResponse  `json:"building,omitempty"`
	Suggestions []suggestionEntry  `json:"suggestions,omitempty"`
}

type suggestionEntry struct {
	Building buildingResponse `json:"building"`
	Score    float64          `json:"score"`
}

// HandleGetResolve handles GET /resolve/{query} requests.
func (h *ResolveHandler) HandleGetResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/resolve/")
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	query, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	res, err := h.deps.ResolveQuery(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := resolveResponse{Match: res.Kind.String()}
	switch res.Kind {
	case resolve.KindExact:
		b := toBuildingResponse(res.Record)
		resp.Building = &b
	case resolve.KindSuggestions:
		resp.Suggestions = make([]suggestionEntry, len(res.Suggestions))
		for i, s := range res.Suggestions {
			resp.Suggestions[i] = suggestionEntry{
				Building: toBuildingResponse(s.Record),
				Score:    s.Score,
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
