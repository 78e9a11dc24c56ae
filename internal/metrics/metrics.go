// Package metrics counts and times pipeline steps with Prometheus collectors
// held on a private registry.
package metrics

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/tkingovr/interceptor/api"
	"github.com/tkingovr/interceptor/internal/filter"
)

const namespace = "interceptor"

// Collector owns the pipeline metrics.
type Collector struct {
	registry      *prometheus.Registry
	filterApplied *prometheus.CounterVec
	targetHandled *prometheus.CounterVec
	stepDuration  *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		filterApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_applied_total",
			Help:      "Number of requests each filter was applied to.",
		}, []string{"filter"}),
		targetHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "target_handled_total",
			Help:      "Number of requests handled by each target.",
		}, []string{"target"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Time spent in a single filter or target.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"stage", "name"}),
	}
	c.registry.MustRegister(c.filterApplied, c.targetHandled, c.stepDuration)
	return c
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// InstrumentFilter wraps f so every Apply is counted and timed under f's name.
func (c *Collector) InstrumentFilter(f filter.Filter) filter.Filter {
	return &instrumentedFilter{Filter: f, c: c}
}

// InstrumentTarget wraps t so every Handle is counted and timed under t's name.
func (c *Collector) InstrumentTarget(t filter.Target) filter.Target {
	return &instrumentedTarget{Target: t, c: c}
}

// WriteText renders all metrics in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func (c *Collector) observe(stage api.Stage, name string, start time.Time) {
	c.stepDuration.WithLabelValues(string(stage), name).Observe(time.Since(start).Seconds())
}

type instrumentedFilter struct {
	filter.Filter
	c *Collector
}

func (f *instrumentedFilter) Apply(ctx context.Context, req api.Request) {
	defer f.c.observe(api.StageFilter, f.Name(), time.Now())
	f.Filter.Apply(ctx, req)
	f.c.filterApplied.WithLabelValues(f.Name()).Inc()
}

type instrumentedTarget struct {
	filter.Target
	c *Collector
}

func (t *instrumentedTarget) Handle(ctx context.Context, req api.Request) {
	defer t.c.observe(api.StageTarget, t.Name(), time.Now())
	t.Target.Handle(ctx, req)
	t.c.targetHandled.WithLabelValues(t.Name()).Inc()
}
