// Package boost implements the depletable, regenerating boost resource of a glider.
//
// Charge always stays within [0, Capacity]. Once the charge is drained to zero the
// resource refuses to boost until regeneration lifts the charge above RearmThreshold.
package boost

import (
	"math"

	"github.com/opd-ai/go-glide/pkg/curve"
	"github.com/opd-ai/go-glide/pkg/physics"
)

const (
	// RearmThreshold is the charge that must be exceeded before boosting is allowed
	// again after depletion.
	RearmThreshold = 0.1

	// minNormalizedCharge keeps the regen curve away from a zero-charge lockout.
	minNormalizedCharge = 0.01
)

// Settings is the immutable boost configuration
type Settings struct {
	Capacity   float64
	DrainRate  float64 // charge per second while boosting
	RegenRate  float64 // charge per second at multiplier 1 and base speed
	RegenDelay float64 // seconds after a drain before regeneration resumes
	RegenCurve curve.Curve
}

// Resource holds the current boost charge
type Resource struct {
	settings   Settings
	current    float64
	canBoost   bool
	regenTimer float64
}

// NewResource creates a fully charged resource
func NewResource(settings Settings) *Resource {
	if settings.RegenCurve == nil {
		settings.RegenCurve = curve.Constant(1)
	}
	r := &Resource{settings: settings}
	r.Reset()
	return r
}

// Reset refills the resource and clears the regen cooldown
func (r *Resource) Reset() {
	r.current = math.Max(r.settings.Capacity, 0)
	r.canBoost = true
	r.regenTimer = 0
}

// Settings returns the configuration the resource was built with
func (r *Resource) Settings() Settings { return r.settings }

// Current returns the current charge
func (r *Resource) Current() float64 { return r.current }

// CanBoost reports whether boosting is currently allowed
func (r *Resource) CanBoost() bool { return r.canBoost }

// RegenTimer returns the remaining regen cooldown in seconds
func (r *Resource) RegenTimer() float64 { return r.regenTimer }

// Normalized returns the charge as a fraction of capacity in [0, 1]
func (r *Resource) Normalized() float64 {
	if r.settings.Capacity <= 0 {
		return 0
	}
	return physics.Clamp01(r.current / r.settings.Capacity)
}

// Tick counts down the regen cooldown
func (r *Resource) Tick(deltaTime float64) {
	r.regenTimer = math.Max(0, r.regenTimer-deltaTime)
}

// Consume drains charge for one tick and restarts the regen cooldown.
// It returns true when this call emptied the resource.
func (r *Resource) Consume(deltaTime float64) bool {
	wasEmpty := r.current <= 0
	r.current = math.Max(0, r.current-r.settings.DrainRate*deltaTime)
	r.regenTimer = r.settings.RegenDelay

	if r.current <= 0 {
		r.canBoost = false
		return !wasEmpty
	}
	return false
}

// Regen restores charge for one tick. speedFactor scales the rate with flight speed
// relative to base speed. Nothing is restored while the regen cooldown runs.
// It returns true when this call re-armed boosting.
func (r *Resource) Regen(multiplier, speedFactor, deltaTime float64) bool {
	if r.regenTimer > 0 || r.settings.Capacity <= 0 {
		return false
	}

	n := math.Max(r.current/r.settings.Capacity, minNormalizedCharge)
	rate := math.Max(r.settings.RegenCurve.Evaluate(n), 0)
	amount := rate * r.settings.RegenRate * multiplier * math.Max(speedFactor, 0) * deltaTime
	r.current = physics.Clamp(r.current+amount, 0, r.settings.Capacity)

	if !r.canBoost && r.current > RearmThreshold {
		r.canBoost = true
		return true
	}
	return false
}

// Acceleration holds the tuning used to turn boost charge into speed
type Acceleration struct {
	BaseSpeed         float64
	SpeedUpMultiplier float64
	MaxSpeed          float64
	Rate              float64 // speed units per second at full charge
}

// Accelerate moves speed toward the boost target speed at a rate proportional to the
// remaining charge. The approach is linear and never overshoots the target.
func (r *Resource) Accelerate(speed float64, a Acceleration, deltaTime float64) float64 {
	if a.MaxSpeed <= 0 {
		return speed
	}
	target := physics.Lerp(a.BaseSpeed*a.SpeedUpMultiplier, a.MaxSpeed, speed/a.MaxSpeed)
	effective := a.Rate * r.Normalized()
	return physics.MoveTowards(speed, target, effective*deltaTime)
}
