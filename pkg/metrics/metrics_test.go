package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording resolution metrics", func() {
			So(func() {
				RecordQueryResolved("exact_name", "exact")
				RecordQueryResolved("similarity", "suggestions")
				RecordQueryResolved("code", "none")
				RecordResolutionLatency(1.5)
			}, ShouldNotPanic)
		})

		Convey("When recording join metrics", func() {
			So(func() {
				RecordJoinLatency(0.4)
				RecordJoinFanout(12)
			}, ShouldNotPanic)
		})

		Convey("When recording snapshot metrics", func() {
			So(func() {
				RecordSnapshotRebuildDuration(3.2)
				UpdateSnapshotLastDurationMs(3.2)
				UpdateSnapshotLastUnix(1_700_000_000)
				IncrementSnapshotCount()
				RecordReloadError()
			}, ShouldNotPanic)
		})

		Convey("When updating data scale gauges", func() {
			So(func() {
				UpdateBuildingsLoaded(120)
				UpdateObservationsLoaded(50_000)
				UpdateBridgeEntries(110)
				UpdateDatesAvailable(14)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("heatmap", "GET", "200")
				RecordHTTPRequestDuration("heatmap", "GET", "200", 15.0)
				RecordErrorByEndpoint("heatmap", "GET", "client_error")
				RecordErrorByType("client_error", "medium")
				RecordErrorByComponent("loader", "parse")
				RecordErrorLatency("http", "client_error", 2.0)
			}, ShouldNotPanic)
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
