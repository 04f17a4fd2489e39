package telemetry

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/opd-ai/go-glide/pkg/boost"
	"github.com/opd-ai/go-glide/pkg/curve"
	"github.com/opd-ai/go-glide/pkg/flight"
	"github.com/opd-ai/go-glide/pkg/glide"
	"github.com/opd-ai/go-glide/pkg/physics"
)

type levelPivot struct{}

func (levelPivot) Euler() (float64, float64) { return 0, 0 }

func TestCapture(t *testing.T) {
	body := physics.NewBody(mgl64.Vec3{1, 2, 3})
	tuning := flight.Tuning{BaseSpeed: 3, MaxSpeed: 45, MinSpeed: 1.5, DragCurve: curve.Constant(0), VelocitySmoothing: 0.15}
	c, err := glide.NewController(tuning, boost.Settings{Capacity: 100, DrainRate: 20}, body, levelPivot{}, glide.Options{})
	require.NoError(t, err)

	c.SetSpeedingUp(true)
	c.FixedTick(context.Background(), glide.TickContext{DT: 0.02})

	s := Capture(c, 0.02)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Equal(t, "boosting", s.State)
	assert.InDelta(t, 99.6, s.Boost, 1e-9)
	assert.InDelta(t, 0.996, s.BoostNormalized, 1e-9)
	assert.True(t, s.CanBoost)
	assert.Equal(t, [3]float64{1, 2, 3}, s.Position)
	assert.Equal(t, c.MeasuredSpeed(), s.MeasuredSpeed)
}

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{Time: 0.02, State: "normal", Speed: 3, Boost: 100},
		{Time: 0.04, State: "boosting", Transitions: 1, Speed: 4, Boost: 99},
		{Time: 0.06, State: "boosting", Transitions: 1, Speed: 6, Boost: 98},
		{Time: 0.08, State: "slow", Transitions: 2, Speed: 2, Boost: 98},
	}

	s := Summarize(samples, 0.02)
	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, 2, s.Transitions)
	assert.Equal(t, 6.0, s.MaxSpeed)
	assert.Equal(t, 2.0, s.MinSpeed)
	assert.Equal(t, 98.0, s.MinBoost)
	assert.Equal(t, 0.08, s.Duration)
	assert.InDelta(t, 0.04, s.TimeInState["boosting"], 1e-12)
}

func TestSummarize_CountsTransitions(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    int
	}{
		{
			name: "first_tick_transition",
			samples: []Sample{
				{State: "boosting", Transitions: 1},
				{State: "boosting", Transitions: 1},
			},
			want: 1,
		},
		{
			name: "reset_between_samples",
			samples: []Sample{
				{State: "boosting", Transitions: 1},
				{State: "slow", Transitions: 2},
				{State: "normal", Transitions: 0},
				{State: "boosting", Transitions: 1},
			},
			want: 3,
		},
		{
			name:    "no_transitions",
			samples: []Sample{{State: "normal"}, {State: "normal"}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.samples, 0.02).Transitions)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0.02)
	assert.Zero(t, s.Samples)
	assert.Zero(t, s.MinSpeed)
	assert.Zero(t, s.MinBoost)
}

type countingObserver struct {
	embedded.Observer
	floats int
}

func (o *countingObserver) ObserveFloat64(metric.Float64Observable, float64, ...metric.ObserveOption) {
	o.floats++
}

func (o *countingObserver) ObserveInt64(metric.Int64Observable, int64, ...metric.ObserveOption) {}

func TestMetrics_RecordAndObserve(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	obs := &countingObserver{}
	require.NoError(t, m.observe(context.Background(), obs))
	assert.Zero(t, obs.floats, "nothing is observed before the first sample")

	_, ok := m.Last()
	assert.False(t, ok)

	m.Record(context.Background(), Sample{State: "normal", Speed: 3})
	m.Record(context.Background(), Sample{State: "boosting", Speed: 5})

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, "boosting", last.State)

	require.NoError(t, m.observe(context.Background(), obs))
	assert.Equal(t, 3, obs.floats)
}

type countingMeter struct {
	noop.Meter
	counter *countingCounter
}

func (m countingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return m.counter, nil
}

type countingCounter struct {
	noop.Int64Counter
	total int64
	from  []string
}

func (c *countingCounter) Add(_ context.Context, n int64, opts ...metric.AddOption) {
	c.total += n
	attrs := metric.NewAddConfig(opts).Attributes()
	from, _ := attrs.Value("from")
	c.from = append(c.from, from.AsString())
}

func TestMetrics_CountsTransitions(t *testing.T) {
	counter := &countingCounter{}
	m, err := NewMetrics(countingMeter{counter: counter})
	require.NoError(t, err)

	ctx := context.Background()
	m.Record(ctx, Sample{State: "boosting", Transitions: 1})
	m.Record(ctx, Sample{State: "boosting", Transitions: 1})
	m.Record(ctx, Sample{State: "slow", Transitions: 2})
	// controller reset
	m.Record(ctx, Sample{State: "normal", Transitions: 0})
	m.Record(ctx, Sample{State: "boosting", Transitions: 1})

	assert.Equal(t, int64(3), counter.total)
	assert.Equal(t, []string{"normal", "boosting", "normal"}, counter.from)
}

func TestNewMetrics_GlobalMeter(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	m.Record(context.Background(), Sample{State: "normal"})
}
