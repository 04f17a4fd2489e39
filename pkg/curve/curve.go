// Package curve provides the scalar response curves used for drag and boost regeneration.
// A curve maps a normalized ratio (usually in [0, 1]) to a multiplier.
package curve

import (
	"errors"
	"fmt"
	"sort"
)

// Curve maps a normalized input to a multiplier
type Curve interface {
	Evaluate(x float64) float64
}

// Func adapts a plain function to the Curve interface
type Func func(x float64) float64

// Evaluate calls f(x)
func (f Func) Evaluate(x float64) float64 {
	return f(x)
}

// Constant evaluates to the same value everywhere
type Constant float64

// Evaluate returns the constant
func (c Constant) Evaluate(float64) float64 {
	return float64(c)
}

// Linear interpolates from From at x=0 to To at x=1, clamped outside that range
type Linear struct {
	From float64 `json:"from" mapstructure:"from"`
	To   float64 `json:"to" mapstructure:"to"`
}

// Evaluate returns the interpolated value
func (l Linear) Evaluate(x float64) float64 {
	if x <= 0 {
		return l.From
	}
	if x >= 1 {
		return l.To
	}
	return l.From + (l.To-l.From)*x
}

// Key is a single sample of a keyframed curve
type Key struct {
	Time  float64 `json:"time" mapstructure:"time"`
	Value float64 `json:"value" mapstructure:"value"`
}

// Keyframes is a piecewise-linear curve through sorted keys.
// Inputs before the first key or after the last key are clamped to the end values.
type Keyframes []Key

var (
	ErrNoKeys       = errors.New("curve has no keys")
	ErrUnsortedKeys = errors.New("curve keys are not sorted by time")
)

// NewKeyframes builds a keyframed curve, sorting keys by time
func NewKeyframes(keys ...Key) Keyframes {
	k := make(Keyframes, len(keys))
	copy(k, keys)
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
	return k
}

// Validate checks that the curve has keys and that their times strictly increase
func (k Keyframes) Validate() error {
	if len(k) == 0 {
		return ErrNoKeys
	}
	for i := 1; i < len(k); i++ {
		if k[i].Time <= k[i-1].Time {
			return fmt.Errorf("key %d at t=%g: %w", i, k[i].Time, ErrUnsortedKeys)
		}
	}
	return nil
}

// Monotone reports whether the curve values never decrease
func (k Keyframes) Monotone() bool {
	for i := 1; i < len(k); i++ {
		if k[i].Value < k[i-1].Value {
			return false
		}
	}
	return true
}

// Evaluate samples the curve at x. An empty curve evaluates to 0.
func (k Keyframes) Evaluate(x float64) float64 {
	switch {
	case len(k) == 0:
		return 0
	case x <= k[0].Time:
		return k[0].Value
	case x >= k[len(k)-1].Time:
		return k[len(k)-1].Value
	}

	// First key strictly after x
	i := sort.Search(len(k), func(i int) bool { return k[i].Time > x })
	a, b := k[i-1], k[i]
	t := (x - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*t
}
