package metrics_test

import (
	"testing"

	"github.com/praticodes/litloom/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then the helpers record without panicking", func() {
			So(func() {
				metrics.RecordRecommendation("optimal", 1.5)
				metrics.RecordRecommendation("sort", 0.5)
				metrics.RecordRecommendationError()
				metrics.UpdatePoolSize(42)
				metrics.RecordBookScraped(120)
				metrics.RecordScrapeError()
				metrics.RecordHarvestError()
				metrics.RecordDuplicateLink()
				metrics.RecordJobEnqueued()
				metrics.RecordJobProcessed(200)
				metrics.UpdateQueueSize(3)
				metrics.UpdateWorkerCount(4)
				metrics.RecordHTTPRequest("recommendations", "POST", "200")
				metrics.RecordHTTPRequestDuration("recommendations", "POST", "200", 12)
			}, ShouldNotPanic)
		})

		Convey("Then the registry gathers the registered families", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
