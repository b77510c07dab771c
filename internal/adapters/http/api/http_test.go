package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/campuspulse/campuspulse/internal/adapters/http/api"
	"github.com/campuspulse/campuspulse/internal/adapters/repository"
	"github.com/campuspulse/campuspulse/internal/app"
	"github.com/campuspulse/campuspulse/internal/domain/model"
	"github.com/campuspulse/campuspulse/internal/domain/occupancy"
	"github.com/campuspulse/campuspulse/internal/domain/resolve"
)

// stubService implements api.Dependencies and api.StatsProvider with canned
// responses for handler tests.
type stubService struct {
	resolveResult resolve.Result
	resolveErr    error
	expandCodes   []string
	heatmapCounts []model.DisplayCount
	heatmapErr    error
	timeline      []occupancy.TimelinePoint
	timelineErr   error
	metadata      app.Metadata
	metadataErr   error

	lastQuery string
}

func (s *stubService) ResolveQuery(_ context.Context, query string) (resolve.Result, error) {
	s.lastQuery = query
	return s.resolveResult, s.resolveErr
}

func (s *stubService) ExpandSensorCode(_ context.Context, code string) ([]string, error) {
	return s.expandCodes, nil
}

func (s *stubService) Heatmap(_ context.Context, date, hour, minute string) ([]model.DisplayCount, error) {
	return s.heatmapCounts, s.heatmapErr
}

func (s *stubService) Timeline(_ context.Context, date string) ([]occupancy.TimelinePoint, error) {
	return s.timeline, s.timelineErr
}

func (s *stubService) Metadata(_ context.Context) (app.Metadata, error) {
	return s.metadata, s.metadataErr
}

func (s *stubService) GetStats() map[string]interface{} {
	return map[string]interface{}{"loaded": true, "buildings": 3}
}

func newTestMux(stub *stubService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(stub, stub).Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMetadataEndpoint(t *testing.T) {
	Convey("Given the metadata endpoint", t, func() {
		stub := &stubService{metadata: app.Metadata{
			Dates:      []string{"2025-03-03"},
			Categories: []string{"Non-Residential", "Residential"},
		}}
		mux := newTestMux(stub)

		Convey("When requesting metadata", func() {
			rec := get(mux, "/metadata")

			Convey("Then the data set description comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var md app.Metadata
				So(json.Unmarshal(rec.Body.Bytes(), &md), ShouldBeNil)
				So(md.Dates, ShouldResemble, []string{"2025-03-03"})
				So(md.Categories, ShouldHaveLength, 2)
			})

			Convey("Then the request carries a request id", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When the store is not loaded yet", func() {
			stub.metadataErr = repository.ErrNotLoaded
			rec := get(mux, "/metadata")

			Convey("Then the endpoint reports service unavailable", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "not_loaded")
			})
		})

		Convey("When using a non-GET method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metadata", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHeatmapEndpoint(t *testing.T) {
	Convey("Given the heatmap endpoint", t, func() {
		stub := &stubService{heatmapCounts: []model.DisplayCount{
			{DisplayCode: "050", Count: 60},
			{DisplayCode: "191N", Count: 0},
		}}
		mux := newTestMux(stub)

		Convey("When requesting a time slice", func() {
			rec := get(mux, "/heatmap?date=2025-03-03&hour=9&minute=10")

			Convey("Then per-building counts come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var counts []model.DisplayCount
				So(json.Unmarshal(rec.Body.Bytes(), &counts), ShouldBeNil)
				So(counts, ShouldHaveLength, 2)
				So(counts[0].DisplayCode, ShouldEqual, "050")
			})
		})

		Convey("When the selector is invalid", func() {
			stub.heatmapErr = app.ErrInvalidInput
			rec := get(mux, "/heatmap?date=bogus&hour=9&minute=10")

			Convey("Then the endpoint reports a bad request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid_input")
			})
		})
	})
}

func TestTimelineEndpoint(t *testing.T) {
	Convey("Given the timeline endpoint", t, func() {
		stub := &stubService{timeline: []occupancy.TimelinePoint{
			{Time: "09:00", Category: "Residential", Occupancy: 120},
			{Time: "09:00", Category: "Total", Occupancy: 175},
		}}
		mux := newTestMux(stub)

		Convey("When requesting a day with data", func() {
			rec := get(mux, "/timeline?date=2025-03-03")

			Convey("Then the aggregated series come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var points []occupancy.TimelinePoint
				So(json.Unmarshal(rec.Body.Bytes(), &points), ShouldBeNil)
				So(points, ShouldHaveLength, 2)
			})
		})

		Convey("When requesting a day without data", func() {
			stub.timeline = nil
			rec := get(mux, "/timeline?date=2025-06-01")

			Convey("Then the body is an empty array, not null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldStartWith, "[]")
			})
		})
	})
}

func TestResolveEndpoint(t *testing.T) {
	record := model.BuildingRecord{
		DisplayCode: "050",
		SensorCode:  "50",
		Name:        "Gilbert Memorial Library",
		Category:    model.CategoryNonResidential,
		Centroid:    model.Centroid{Lat: 33.05, Lng: -83.95},
	}

	Convey("Given the resolve endpoint", t, func() {
		stub := &stubService{}
		mux := newTestMux(stub)

		Convey("When the query resolves exactly", func() {
			stub.resolveResult = resolve.Result{
				Kind:   resolve.KindExact,
				Tier:   resolve.TierAlias,
				Record: record,
			}
			rec := get(mux, "/resolve/library")

			Convey("Then the building comes back under match exact", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					Match    string `json:"match"`
					Building *struct {
						DisplayCode string `json:"display_code"`
						Name        string `json:"name"`
						Category    string `json:"category"`
					} `json:"building"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Match, ShouldEqual, "exact")
				So(resp.Building, ShouldNotBeNil)
				So(resp.Building.DisplayCode, ShouldEqual, "050")
				So(resp.Building.Category, ShouldEqual, "Non-Residential")
			})
		})

		Convey("When the query is ambiguous", func() {
			stub.resolveResult = resolve.Result{
				Kind: resolve.KindSuggestions,
				Tier: resolve.TierSimilarity,
				Suggestions: []resolve.Scored{
					{Record: record, Score: 0.82},
				},
			}
			rec := get(mux, "/resolve/librry")

			Convey("Then ranked suggestions come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					Match       string `json:"match"`
					Suggestions []struct {
						Score float64 `json:"score"`
					} `json:"suggestions"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Match, ShouldEqual, "suggestions")
				So(resp.Suggestions, ShouldHaveLength, 1)
				So(resp.Suggestions[0].Score, ShouldEqual, 0.82)
			})
		})

		Convey("When nothing matches", func() {
			stub.resolveResult = resolve.Result{Kind: resolve.KindNoMatch, Tier: resolve.TierNone}
			rec := get(mux, "/resolve/xyzzy")

			Convey("Then none is still a successful response", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"match":"none"`)
			})
		})

		Convey("When the query segment is URL-escaped", func() {
			stub.resolveResult = resolve.Result{Kind: resolve.KindNoMatch}
			get(mux, "/resolve/the%20culc")

			Convey("Then the handler unescapes before resolving", func() {
				So(stub.lastQuery, ShouldEqual, "the culc")
			})
		})

		Convey("When the query segment is empty or nested", func() {
			So(get(mux, "/resolve/").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/resolve/a/b").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestMux(&stubService{})

		Convey("When requesting stats", func() {
			rec := get(mux, "/stats")

			Convey("Then the service statistics come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["loaded"], ShouldEqual, true)
			})
		})
	})
}

func TestCORSMiddleware(t *testing.T) {
	Convey("Given a wrapped endpoint", t, func() {
		mux := newTestMux(&stubService{})

		Convey("When sending a preflight request", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/metadata", nil))

			Convey("Then it is answered without hitting the handler", func() {
				So(rec.Code, ShouldEqual, http.StatusNoContent)
				So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When sending a normal request", func() {
			rec := get(mux, "/metadata")

			Convey("Then CORS headers are present", func() {
				So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})
	})
}
