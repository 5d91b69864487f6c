package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pathways/internal/models"
)

var (
	pathwayEventDesc = prometheus.NewDesc(
		"pathways_events_total",
		"Total backend operations by pathway and outcome",
		[]string{"pathway", "operation", "outcome"},
		nil,
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathways_upstream_requests_total",
			Help: "Backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathways_upstream_request_duration_seconds",
			Help:    "Backend request latency by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	upstreamUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pathways_upstream_up",
		Help: "Whether the last backend health probe succeeded (1) or not (0)",
	})
)

// EventStore persists per-pathway outcome counts.
type EventStore interface {
	IncrementPathwayEvent(ctx context.Context, pathway, operation, outcome string) error
	GetAllPathwayEvents(ctx context.Context) ([]models.PathwayEvent, error)
}

// EventCollector is a custom Prometheus collector that reads pathway event
// counts from the store on each scrape.
type EventCollector struct {
	store EventStore
}

// NewEventCollector creates a collector backed by store.
func NewEventCollector(store EventStore) *EventCollector {
	return &EventCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *EventCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pathwayEventDesc
}

// Collect queries the store for all pathway events and emits them as counters.
func (c *EventCollector) Collect(ch chan<- prometheus.Metric) {
	events, err := c.store.GetAllPathwayEvents(context.Background())
	if err != nil {
		slog.Error("failed to collect pathway event metrics", "error", err)
		return
	}
	for _, e := range events {
		ch <- prometheus.MustNewConstMetric(
			pathwayEventDesc,
			prometheus.CounterValue,
			float64(e.Count),
			e.Pathway,
			e.Operation,
			e.Outcome,
		)
	}
}

// Recorder provides async pathway event recording.
type Recorder struct {
	store EventStore
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
	registerOnce sync.Once
)

// Init registers the collectors. The event recorder is only enabled when a
// store is given. Must be called once at startup.
func Init(store EventStore) {
	registerOnce.Do(func() {
		prometheus.MustRegister(upstreamRequests, upstreamDuration, upstreamUp)
	})
	if store == nil {
		return
	}
	recorderOnce.Do(func() {
		recorder = &Recorder{store: store}
		prometheus.MustRegister(NewEventCollector(store))
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEvent asynchronously records a pathway operation outcome.
func RecordEvent(pathway, operation, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.store.IncrementPathwayEvent(context.Background(), pathway, operation, outcome); err != nil {
			slog.Error("failed to record pathway event", "pathway", pathway, "operation", operation, "outcome", outcome, "error", err)
		}
	}()
}

// ObserveUpstream counts one backend request outcome.
func ObserveUpstream(operation, outcome string) {
	upstreamRequests.WithLabelValues(operation, outcome).Inc()
}

// ObserveUpstreamDuration records backend request latency.
func ObserveUpstreamDuration(operation string, d time.Duration) {
	upstreamDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetUpstreamUp records the result of the latest backend health probe.
func SetUpstreamUp(up bool) {
	if up {
		upstreamUp.Set(1)
		return
	}
	upstreamUp.Set(0)
}
