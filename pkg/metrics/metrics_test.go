package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// value reads the current value of a counter or gauge.
func value(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		panic(err)
	}
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	}
	return 0
}

func countFamily(r *prometheus.Registry, name string) int {
	families, err := r.Gather()
	if err != nil {
		panic(err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return len(f.GetMetric())
		}
	}
	return 0
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)
			m.cacheHits.Inc()

			Convey("Then metric names should carry namespace and subsystem", func() {
				So(m, ShouldNotBeNil)
				So(value(m.cacheHits), ShouldEqual, 1)
				So(countFamily(registry, "test_unit_cache_hits_total"), ShouldEqual, 1)
			})
		})

		Convey("When registering the same manager twice on one registry", func() {
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto should panic on the duplicate", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording recommendations", func() {
			before := value(globalManager.recommendations.WithLabelValues(ResultOK))
			RecordRecommendation(ResultOK)
			RecordRecommendationLatency(1.5)
			RecordCandidatesScored(12)

			Convey("Then counters should move", func() {
				So(value(globalManager.recommendations.WithLabelValues(ResultOK)), ShouldEqual, before+1)
			})
		})

		Convey("When recording cache traffic", func() {
			hits := value(globalManager.cacheHits)
			misses := value(globalManager.cacheMisses)
			RecordCacheHit()
			RecordCacheMiss()
			RecordCacheMiss()

			So(value(globalManager.cacheHits), ShouldEqual, hits+1)
			So(value(globalManager.cacheMisses), ShouldEqual, misses+2)
		})

		Convey("When recording a reload", func() {
			RecordDataReload(ResultOK, 12, 1700000000)
			RecordDataReload(ResultError, 0, 0)
			UpdateDataSize(120, 10, 9)

			Convey("Then gauges should hold the latest values", func() {
				So(value(globalManager.lastReloadUnix), ShouldEqual, 1700000000)
				So(value(globalManager.loadedHeroes), ShouldEqual, 120)
				So(value(globalManager.poolSize), ShouldEqual, 10)
				So(value(globalManager.matchupHeroes), ShouldEqual, 9)
			})
		})

		Convey("When recording the remaining families", func() {
			So(func() {
				RecordHTTPRequest("/recommend", "POST", "200")
				RecordHTTPRequestDuration("/recommend", "POST", "200", 3)
				RecordErrorByEndpoint("/recommend", "POST", "bad_request")
				RecordUpstreamRequest("heroes", "200", 40)
				RecordUpstreamRetry()
				RecordSyncJob(ResultSkipped)
				UpdateQueueSize(3)
				UpdateQueueCapacity(256)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerActiveCount(2)
				RecordWorkerProcessingLatency(5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should expose heropick metrics", func() {
			RecordHTTPRequest("/heroes", "GET", "200")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if strings.HasPrefix(f.GetName(), "heropick_http_requests_total") {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		before := value(globalManager.candidatesScored)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordCandidatesScored(1)
				}
			}()
		}
		wg.Wait()

		So(value(globalManager.candidatesScored), ShouldEqual, before+1000)
	})
}
