package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/opd-ai/go-glide/pkg/telemetry"

// Metrics exports the latest sample as gauges and counts state transitions.
// Uses the global OTel meter when none is given (no-op if not configured).
type Metrics struct {
	speed       metric.Float64ObservableGauge
	boost       metric.Float64ObservableGauge
	bank        metric.Float64ObservableGauge
	transitions metric.Int64Counter

	mu   sync.Mutex
	last Sample
	seen bool
}

// NewMetrics registers the glide instruments on m
func NewMetrics(m metric.Meter) (*Metrics, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	g := &Metrics{}

	var err error
	g.speed, err = m.Float64ObservableGauge("glide.speed",
		metric.WithDescription("Current glide speed"),
		metric.WithUnit("m/s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speed gauge: %w", err)
	}

	g.boost, err = m.Float64ObservableGauge("glide.boost",
		metric.WithDescription("Current boost charge"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating boost gauge: %w", err)
	}

	g.bank, err = m.Float64ObservableGauge("glide.bank",
		metric.WithDescription("Current bank angle"),
		metric.WithUnit("deg"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bank gauge: %w", err)
	}

	_, err = m.RegisterCallback(g.observe, g.speed, g.boost, g.bank)
	if err != nil {
		return nil, fmt.Errorf("registering gauge callback: %w", err)
	}

	g.transitions, err = m.Int64Counter("glide.state.transitions",
		metric.WithDescription("Total glide state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	return g, nil
}

func (g *Metrics) observe(_ context.Context, o metric.Observer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.seen {
		return nil
	}
	state := metric.WithAttributes(attribute.String("state", g.last.State))
	o.ObserveFloat64(g.speed, g.last.Speed, state)
	o.ObserveFloat64(g.boost, g.last.Boost, state)
	o.ObserveFloat64(g.bank, g.last.Bank, state)
	return nil
}

// Record stores s for the gauges and counts the transitions since the previous sample
func (g *Metrics) Record(ctx context.Context, s Sample) {
	g.mu.Lock()
	prev, seen := g.last, g.seen
	g.last, g.seen = s, true
	g.mu.Unlock()

	if !seen || s.Transitions < prev.Transitions {
		prev = initialSample
	}
	if n := transitionsSince(prev, s); n > 0 {
		g.transitions.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("from", prev.State),
			attribute.String("to", s.State),
		))
	}
}

// Last returns the most recently recorded sample
func (g *Metrics) Last() (Sample, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.seen
}
