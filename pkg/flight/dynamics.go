// Package flight implements the per-tick glide dynamics and banking of a glider.
//
// All functions operate on an explicit State and an injected physics.RigidBody so the
// model runs headlessly at any fixed tick rate.
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/curve"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// Tuning holds the immutable flight constants
type Tuning struct {
	BaseSpeed float64
	MaxSpeed  float64
	MinSpeed  float64

	LiftStrength      float64
	ThrustFactor      float64
	DragCurve         curve.Curve
	VelocitySmoothing float64 // seconds

	SpeedUpMultiplier  float64
	SlowDownMultiplier float64
	Acceleration       float64 // boost acceleration at full charge
	Deceleration       float64 // slow-glide deceleration

	RotationSpeed       float64
	BankStrength        float64 // degrees of roll at full look input
	BankSteerRate       float64
	BankReturnSpeed     float64
	ControlHardnessFast float64
	ControlSoftnessSlow float64
}

// drag evaluates the drag curve at the given speed ratio
func (t Tuning) drag(ratio float64) float64 {
	if t.DragCurve == nil {
		return 0
	}
	return t.DragCurve.Evaluate(ratio)
}

// speedRatio returns speed relative to max speed
func (t Tuning) speedRatio(speed float64) float64 {
	if t.MaxSpeed <= 0 {
		return 0
	}
	return speed / t.MaxSpeed
}

// State is the mutable flight state owned by a controller
type State struct {
	CurrentSpeed float64
	Bank         float64

	smoothVelocity mgl64.Vec3
}

// NewState returns a state cruising at base speed
func NewState(t Tuning) State {
	s := State{CurrentSpeed: t.BaseSpeed}
	s.ClampSpeed(t)
	return s
}

// ClampSpeed enforces MinSpeed <= CurrentSpeed <= MaxSpeed
func (s *State) ClampSpeed(t Tuning) {
	s.CurrentSpeed = physics.Clamp(s.CurrentSpeed, t.MinSpeed, t.MaxSpeed)
}

// ApplyNaturalMovement integrates pitch thrust and drag into the current speed, then
// eases the body's velocity toward forward motion plus lift minus drag.
func (s *State) ApplyNaturalMovement(body physics.RigidBody, t Tuning, deltaTime float64) {
	orientation := body.Orientation()

	// Diving gains speed, climbing loses it
	pitch := mgl64.DegToRad(physics.PitchDegrees(orientation))
	s.CurrentSpeed += math.Sin(pitch) * t.ThrustFactor * deltaTime

	s.CurrentSpeed -= t.drag(t.speedRatio(s.CurrentSpeed)) * deltaTime
	s.ClampSpeed(t)

	ratio := t.speedRatio(s.CurrentSpeed)
	forward := physics.Forward(orientation).Mul(s.CurrentSpeed)
	lift := physics.Up(orientation).Mul(physics.Clamp01(ratio) * t.LiftStrength)
	drag := body.Velocity().Mul(-t.drag(ratio))

	target := forward.Add(lift).Add(drag)
	body.SetVelocity(physics.SmoothDampVec3(body.Velocity(), target, &s.smoothVelocity, t.VelocitySmoothing, deltaTime))
}

// ApplySlowDown decelerates toward the reduced slow-glide speed
func (s *State) ApplySlowDown(t Tuning, deltaTime float64) {
	target := t.BaseSpeed * t.SlowDownMultiplier
	s.CurrentSpeed = physics.MoveTowards(s.CurrentSpeed, target, t.Deceleration*deltaTime)
	s.ClampSpeed(t)
}

// Reset returns the state to cruising at base speed
func (s *State) Reset(t Tuning) {
	*s = NewState(t)
}
