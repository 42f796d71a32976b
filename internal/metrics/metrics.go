package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"votepulse/internal/analytics"
)

var (
	visitsDesc = prometheus.NewDesc(
		"votepulse_visits_total",
		"Site visits recorded for the current day",
		nil,
		nil,
	)
	viewsDesc = prometheus.NewDesc(
		"votepulse_project_views_total",
		"Project views recorded for the current day",
		[]string{"project"},
		nil,
	)
	upvotesDesc = prometheus.NewDesc(
		"votepulse_upvotes",
		"Current net upvotes per project (resynchronized mirror of the ledger count)",
		[]string{"project"},
		nil,
	)
	voteEventsDesc = prometheus.NewDesc(
		"votepulse_vote_events_total",
		"Vote toggle transitions for the current day by direction",
		[]string{"project", "direction"},
		nil,
	)
)

// DayCollector is a custom Prometheus collector that reads the current day's
// analytics snapshot from the aggregate store on each scrape.
type DayCollector struct {
	analytics *analytics.Recorder
}

// Describe sends the metric descriptors to the channel.
func (c *DayCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- visitsDesc
	ch <- viewsDesc
	ch <- upvotesDesc
	ch <- voteEventsDesc
}

// Collect reads today's snapshot and emits every counter in it.
func (c *DayCollector) Collect(ch chan<- prometheus.Metric) {
	snap, err := c.analytics.Day(context.Background(), c.analytics.Today())
	if err != nil {
		slog.Error("failed to collect analytics metrics", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(visitsDesc, prometheus.CounterValue, float64(snap.TotalVisits))
	for project, n := range snap.ProjectViews {
		ch <- prometheus.MustNewConstMetric(viewsDesc, prometheus.CounterValue, float64(n), project)
	}
	for project, n := range snap.Upvotes {
		ch <- prometheus.MustNewConstMetric(upvotesDesc, prometheus.GaugeValue, float64(n), project)
	}
	for project, n := range snap.UpvoteEvents {
		ch <- prometheus.MustNewConstMetric(voteEventsDesc, prometheus.CounterValue, float64(n), project, "up")
	}
	for project, n := range snap.UnvoteEvents {
		ch <- prometheus.MustNewConstMetric(voteEventsDesc, prometheus.CounterValue, float64(n), project, "down")
	}
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(a *analytics.Recorder) {
	initOnce.Do(func() {
		prometheus.MustRegister(&DayCollector{analytics: a})
	})
}
