package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with defaults", func() {
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then all collectors register without collision", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("suite"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			So(manager, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package-level manager", t, func() {
		Convey("When recording through every helper", func() {
			RecordStoreRead("thebeat_leads")
			RecordStoreWrite("thebeat_leads")
			RecordStoreFallback("thebeat_events")
			RecordChangePublished("thebeat_leads")
			RecordChangeDropped()
			UpdateSubscriberCount(2)
			RecordIngested("event", 5)
			RecordDuplicateDropped("event")
			ObserveGeneration("outreach_email", 120*time.Millisecond)
			RecordGenerationError("outreach_email")
			UpdateQueueSize(3)
			UpdateQueueCapacity(100)
			UpdateQueueUtilization(0.03)
			RecordQueueEnqueue()
			RecordQueueDequeue()
			RecordQueueEnqueueError()
			UpdateWorkerActiveCount(4)
			ObserveWorkerProcessing(80 * time.Millisecond)
			RecordWorkerError()
			RecordHTTPRequest("/api/v1/leads", "GET", "200")
			RecordHTTPRequestDuration("/api/v1/leads", "GET", "200", 0.012)

			Convey("Then the registry exposes the observations", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["thebeat_pipeline_store_reads_total"], ShouldBeTrue)
				So(names["thebeat_pipeline_changes_published_total"], ShouldBeTrue)
				So(names["thebeat_pipeline_generation_duration_seconds"], ShouldBeTrue)
				So(names["thebeat_pipeline_queue_size"], ShouldBeTrue)
				So(names["thebeat_pipeline_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
