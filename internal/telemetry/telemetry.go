package telemetry

import (
	"bytes"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector exposes Prometheus metrics for scheduling calls. It mirrors
// the teacher's use of the prometheus/client_golang family, but on the
// emission side rather than the query side: RAPC has no external
// Prometheus to query, so this is what a long-running placement service
// would let something else scrape.
type Collector struct {
	Registry *prometheus.Registry

	placementsTotal        *prometheus.CounterVec
	scheduleDuration       prometheus.Histogram
	unschedulableExecutors prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		Registry: reg,
		placementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rapc_placements_total",
			Help: "Total scheduling calls, labeled by outcome.",
		}, []string{"outcome"}),
		scheduleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rapc_schedule_duration_seconds",
			Help:    "Wall-clock duration of a single Schedule() call.",
			Buckets: prometheus.DefBuckets,
		}),
		unschedulableExecutors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rapc_unschedulable_executors",
			Help: "Executors left unplaced by the most recent scheduling call.",
		}),
	}

	reg.MustRegister(c.placementsTotal, c.scheduleDuration, c.unschedulableExecutors)

	// Create both outcome series up front so the counter is exposed at
	// zero before the first Observe.
	c.placementsTotal.WithLabelValues("success")
	c.placementsTotal.WithLabelValues("failure")
	return c
}

// Observe records the outcome of one scheduling call.
func (c *Collector) Observe(outcome string, duration time.Duration, unschedulable int) {
	c.placementsTotal.WithLabelValues(outcome).Inc()
	c.scheduleDuration.Observe(duration.Seconds())
	c.unschedulableExecutors.Set(float64(unschedulable))
}

// RenderText returns the collected metrics in Prometheus's text exposition
// format, for a CLI invocation with no scrape endpoint to reach.
func (c *Collector) RenderText() (string, error) {
	families, err := c.Registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gathering metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}
