// Package telemetry captures per-tick controller samples and exports them as metrics.
package telemetry

import (
	"math"

	"github.com/opd-ai/go-glide/pkg/glide"
)

// Sample is the controller state after one fixed tick
type Sample struct {
	Tick            uint64
	Time            float64
	State           string
	Transitions     uint64 // running count since the controller was built or reset
	Speed           float64
	MeasuredSpeed   float64
	Boost           float64
	BoostNormalized float64
	CanBoost        bool
	Bank            float64
	Position        [3]float64
}

// Capture reads a sample from the controller
func Capture(c *glide.Controller, elapsed float64) Sample {
	pos := c.Body().Position()
	return Sample{
		Tick:            c.Tick(),
		Time:            elapsed,
		State:           c.State().String(),
		Transitions:     c.Transitions(),
		Speed:           c.CurrentSpeed(),
		MeasuredSpeed:   c.MeasuredSpeed(),
		Boost:           c.CurrentBoost(),
		BoostNormalized: c.BoostNormalized(),
		CanBoost:        c.CanBoost(),
		Bank:            c.Bank(),
		Position:        [3]float64{pos.X(), pos.Y(), pos.Z()},
	}
}

// initialSample stands in for the state before the first tick: every controller starts
// in Normal with no transitions.
var initialSample = Sample{State: glide.Normal.String()}

// transitionsSince returns the transitions between prev and s. A running count lower than
// prev's means the controller was reset in between.
func transitionsSince(prev, s Sample) uint64 {
	if s.Transitions < prev.Transitions {
		return s.Transitions
	}
	return s.Transitions - prev.Transitions
}

// Summary aggregates a run of samples
type Summary struct {
	Samples     int
	Duration    float64
	MaxSpeed    float64
	MinSpeed    float64
	MinBoost    float64
	Transitions int
	TimeInState map[string]float64
}

// Summarize folds samples into a summary. step is the fixed tick duration.
func Summarize(samples []Sample, step float64) Summary {
	s := Summary{
		MinSpeed:    math.Inf(1),
		MinBoost:    math.Inf(1),
		TimeInState: make(map[string]float64),
	}
	if len(samples) == 0 {
		s.MinSpeed, s.MinBoost = 0, 0
		return s
	}

	prev := initialSample
	for _, sample := range samples {
		s.Samples++
		s.MaxSpeed = math.Max(s.MaxSpeed, sample.Speed)
		s.MinSpeed = math.Min(s.MinSpeed, sample.Speed)
		s.MinBoost = math.Min(s.MinBoost, sample.Boost)
		s.TimeInState[sample.State] += step
		s.Transitions += int(transitionsSince(prev, sample))
		prev = sample
	}
	s.Duration = samples[len(samples)-1].Time
	return s
}
