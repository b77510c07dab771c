// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/campuspulse/campuspulse/internal/adapters/loader"
	"github.com/campuspulse/campuspulse/internal/adapters/repository"
	"github.com/campuspulse/campuspulse/internal/domain/alias"
	"github.com/campuspulse/campuspulse/internal/domain/model"
	"github.com/campuspulse/campuspulse/internal/domain/occupancy"
	"github.com/campuspulse/campuspulse/internal/domain/resolve"
	"github.com/campuspulse/campuspulse/pkg/logger"
	"github.com/campuspulse/campuspulse/pkg/metrics"
)

// Selector validation bounds.
const (
	maxHour   = 23
	maxMinute = 59
)

const dateLayout = "2006-01-02"

// Metadata describes the loaded data set for clients: which dates can be
// queried and which building categories exist.
type Metadata struct {
	Dates      []string `json:"dates"`
	Categories []string `json:"categories"`
}

// Service implements the API dependencies for the occupancy dashboard.
// All reads go through an immutable snapshot published atomically by the
// store; the only write event is a full reload.
type Service struct {
	mu sync.Mutex

	// Core components
	store    *repository.Store
	resolver *resolve.Resolver

	// Configuration
	buildingsFile string
	occupancyFile string
	excludedDates []string
	aliasEntries  map[string]string
	watchFiles    bool

	// State
	started bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFiles sets the buildings GeoJSON and occupancy CSV paths.
func WithDataFiles(buildings, occupancyPath string) Option {
	return func(s *Service) {
		if buildings != "" {
			s.buildingsFile = buildings
		}
		if occupancyPath != "" {
			s.occupancyFile = occupancyPath
		}
	}
}

// WithExcludedDates sets the dates dropped at load time.
func WithExcludedDates(dates []string) Option {
	return func(s *Service) {
		s.excludedDates = dates
	}
}

// WithAliasEntries merges extra shorthand terms into the alias table.
func WithAliasEntries(entries map[string]string) Option {
	return func(s *Service) {
		s.aliasEntries = entries
	}
}

// WithFileWatch enables or disables reload on data-file change.
func WithFileWatch(enabled bool) Option {
	return func(s *Service) {
		s.watchFiles = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:         repository.NewStore(),
		buildingsFile: "data/campus_buildings_categories.geojson",
		occupancyFile: "data/ten_min_occupancy_summary.csv",
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.resolver = resolve.NewResolver(
		resolve.WithAliasTable(alias.New(alias.WithEntries(s.aliasEntries))),
	)
	return s
}

// Start loads the initial snapshot and, when enabled, begins watching the
// data files for changes. Start fails if the first load fails: the service
// has nothing to serve without a snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading campus data",
		logger.String("buildings", s.buildingsFile),
		logger.String("occupancy", s.occupancyFile),
	)
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.watchFiles {
		if err := s.startWatcher(ctx); err != nil {
			return err
		}
	}

	s.started = true
	return nil
}

// Stop shuts down the file watcher.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
	s.logger.Info(context.Background(), "occupancy service stopped")
}

// Reload builds a brand-new snapshot from the data files and publishes it
// in one atomic swap. On failure the previous snapshot stays live.
func (s *Service) Reload(ctx context.Context) error {
	records, err := loader.LoadBuildings(s.buildingsFile)
	if err != nil {
		return err
	}
	observations, err := loader.LoadOccupancy(s.occupancyFile, s.excludedDates)
	if err != nil {
		return err
	}

	snap := repository.NewSnapshot(records, observations)
	s.store.Replace(snap)

	metrics.UpdateBuildingsLoaded(snap.RecordCount())
	metrics.UpdateObservationsLoaded(snap.ObservationCount())
	metrics.UpdateBridgeEntries(snap.Bridge().Len())
	metrics.UpdateDatesAvailable(len(snap.Dates()))

	s.logger.Info(ctx, "snapshot published",
		logger.Int("buildings", snap.RecordCount()),
		logger.Int("observations", snap.ObservationCount()),
		logger.Int("sensorCodes", snap.Bridge().Len()),
		logger.Int("dates", len(snap.Dates())),
	)
	return nil
}

// startWatcher watches the directories of both data files. Watching the
// directory rather than the file survives the rename-and-replace pattern
// most exporters use.
func (s *Service) startWatcher(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dirs := map[string]bool{
		filepath.Dir(s.buildingsFile): true,
		filepath.Dir(s.occupancyFile): true,
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	s.watcher = w
	go s.watchLoop(ctx, w)
	return nil
}

// watchLoop reloads on changes to either data file. A failed reload logs
// and keeps the old snapshot live.
func (s *Service) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	watched := map[string]bool{
		filepath.Clean(s.buildingsFile): true,
		filepath.Clean(s.occupancyFile): true,
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !watched[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Info(ctx, "data file changed, reloading", logger.String("file", ev.Name))
			if err := s.Reload(ctx); err != nil {
				metrics.RecordReloadError()
				s.logger.Error(ctx, "reload failed, keeping previous snapshot", logger.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn(ctx, "file watcher error", logger.Error(err))
		}
	}
}

// ResolveQuery classifies a free-text or shorthand query against the
// current building collection.
func (s *Service) ResolveQuery(ctx context.Context, query string) (resolve.Result, error) {
	snap, err := s.store.Current()
	if err != nil {
		return resolve.Result{}, err
	}

	start := time.Now()
	res := s.resolver.Resolve(query, snap.Records())
	ms := float64(time.Since(start).Nanoseconds()) / 1e6

	metrics.RecordResolutionLatency(ms)
	metrics.RecordQueryResolved(string(res.Tier), res.Kind.String())
	s.logger.Debug(ctx, "query resolved",
		logger.String("query", query),
		logger.String("tier", string(res.Tier)),
		logger.String("outcome", res.Kind.String()),
	)
	return res, nil
}

// ExpandSensorCode returns the display codes aggregated under a sensor
// code, or the code itself when it was never aggregated.
func (s *Service) ExpandSensorCode(ctx context.Context, code string) ([]string, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return snap.Bridge().Expand(code), nil
}

// JoinOccupancy fans the observations of one time slice out onto display
// codes. Selector components arrive as strings from the transport layer
// and are validated strictly here; a malformed selector is ErrInvalidInput,
// distinct from an empty slice, which is simply no data.
func (s *Service) JoinOccupancy(ctx context.Context, date, hourStr, minuteStr string) ([]model.DisplayCount, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	d, hour, minute, err := parseSelector(date, hourStr, minuteStr)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	joined := occupancy.Join(snap.Slice(d, hour, minute), snap.Bridge())
	metrics.RecordJoinLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	metrics.RecordJoinFanout(len(joined))
	return joined, nil
}

// Heatmap left-merges a time slice's joined counts onto the full building
// collection, zero-filling buildings with no observation. Join and merge
// run against the same snapshot so a concurrent reload cannot mix record
// sets.
func (s *Service) Heatmap(ctx context.Context, date, hourStr, minuteStr string) ([]model.DisplayCount, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	d, hour, minute, err := parseSelector(date, hourStr, minuteStr)
	if err != nil {
		return nil, err
	}
	joined := occupancy.Join(snap.Slice(d, hour, minute), snap.Bridge())
	return occupancy.Overlay(snap.Records(), joined), nil
}

// Timeline aggregates one date's observations into per-category and total
// series.
func (s *Service) Timeline(ctx context.Context, date string) ([]occupancy.TimelinePoint, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, date)
	}
	return occupancy.Timeline(snap.Day(date), snap.Bridge(), snap.CategoryByDisplay()), nil
}

// Metadata returns the available dates and building categories.
func (s *Service) Metadata(ctx context.Context) (Metadata, error) {
	snap, err := s.store.Current()
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Dates: snap.Dates(), Categories: snap.Categories()}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"loaded": s.store.Loaded(),
	}
	snap, err := s.store.Current()
	if err != nil {
		return stats
	}
	stats["buildings"] = snap.RecordCount()
	stats["observations"] = snap.ObservationCount()
	stats["sensorCodes"] = snap.Bridge().Len()
	stats["dates"] = len(snap.Dates())
	return stats
}

// parseSelector validates a (date, hour, minute) time selector.
func parseSelector(date, hourStr, minuteStr string) (string, int, int, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", 0, 0, fmt.Errorf("%w: date %q", ErrInvalidInput, date)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > maxHour {
		return "", 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidInput, hourStr)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > maxMinute {
		return "", 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidInput, minuteStr)
	}
	return date, hour, minute, nil
}
