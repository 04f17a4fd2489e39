// Package glide implements the glide controller: a three-state machine that runs flight
// dynamics and the boost resource every fixed tick, followed by banking.
package glide

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/boost"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/flight"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/physics"
)

var (
	// ErrNilBody is returned when a controller is built without a physics body
	ErrNilBody = errors.New("glide: physics body is required")
	// ErrNilPivot is returned when a controller is built without a camera pivot
	ErrNilPivot = errors.New("glide: camera pivot is required")
)

// TickContext carries the fixed time step
type TickContext struct {
	DT float64
}

// Options are the optional collaborators of a controller
type Options struct {
	Logger *logging.Logger
	Bus    *event.Bus
}

type notice uint8

const (
	noticeDepleted notice = 1 << iota
	noticeRearmed
)

// Controller turns input into glider motion
type Controller struct {
	tuning flight.Tuning
	flight flight.State
	boost  *boost.Resource
	body   physics.RigidBody
	pivot  flight.Pivot

	input   input.Snapshot
	machine machine
	tick    uint64
	pending notice

	logger *logging.Logger
	bus    *event.Bus
}

// NewController wires a controller to its body and camera pivot
func NewController(tuning flight.Tuning, settings boost.Settings, body physics.RigidBody, pivot flight.Pivot, opts Options) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if pivot == nil {
		return nil, ErrNilPivot
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &Controller{
		tuning:  tuning,
		flight:  flight.NewState(tuning),
		boost:   boost.NewResource(settings),
		body:    body,
		pivot:   pivot,
		machine: newMachine(&defaultTable),
		logger:  opts.Logger,
		bus:     opts.Bus,
	}, nil
}

// SetInput replaces the whole input snapshot
func (c *Controller) SetInput(in input.Snapshot) { c.input = in }

// SetLookInput sets the look axis
func (c *Controller) SetLookInput(look mgl64.Vec2) { c.input.Look = look }

// SetSpeedingUp sets the speed-up flag
func (c *Controller) SetSpeedingUp(v bool) { c.input.SpeedingUp = v }

// SetSlowingDown sets the slow-down flag
func (c *Controller) SetSlowingDown(v bool) { c.input.SlowingDown = v }

// FixedTick advances the controller by one fixed step: cooldown, state selection and
// state tick, then banking and rotation.
func (c *Controller) FixedTick(ctx context.Context, tc TickContext) {
	dt := tc.DT
	if dt <= 0 {
		return
	}
	c.tick++
	c.pending = 0

	c.boost.Tick(dt)

	from := c.machine.current
	next := Select(c.input, c.boost.CanBoost())
	if c.machine.step(c, next, dt) {
		c.logger.Debug(ctx, "glide state changed", "from", from.String(), "to", next.String(), "tick", c.tick)
		c.publish(event.NewStateChangeEvent(c, from.String(), next.String(), c.tick))
	}

	factor := flight.ControlFactor(c.input.SpeedingUp, c.input.SlowingDown, c.tuning)
	c.flight.UpdateBank(c.input.Look.X(), factor, c.tuning, dt)
	c.flight.ApplyRotation(c.body, c.pivot, c.tuning, dt)

	c.report(ctx)
}

// regen restores boost scaled by flight speed relative to base speed
func (c *Controller) regen(multiplier, dt float64) {
	speedFactor := 1.0
	if c.tuning.BaseSpeed > 0 {
		speedFactor = c.flight.CurrentSpeed / c.tuning.BaseSpeed
	}
	if c.boost.Regen(multiplier, speedFactor, dt) {
		c.pending |= noticeRearmed
	}
}

func (c *Controller) acceleration() boost.Acceleration {
	return boost.Acceleration{
		BaseSpeed:         c.tuning.BaseSpeed,
		SpeedUpMultiplier: c.tuning.SpeedUpMultiplier,
		MaxSpeed:          c.tuning.MaxSpeed,
		Rate:              c.tuning.Acceleration,
	}
}

func (c *Controller) report(ctx context.Context) {
	if c.pending&noticeDepleted != 0 {
		c.logger.Info(ctx, "boost depleted", "tick", c.tick)
		c.publish(event.NewBoostEvent(event.BoostDepleted, c, c.boost.Current(), c.tick))
	}
	if c.pending&noticeRearmed != 0 {
		c.logger.Info(ctx, "boost rearmed", "tick", c.tick, "charge", c.boost.Current())
		c.publish(event.NewBoostEvent(event.BoostRearmed, c, c.boost.Current(), c.tick))
	}
}

func (c *Controller) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// Reset restores cruising flight, a full boost charge and the Normal state.
// The body is left to its owner.
func (c *Controller) Reset() {
	c.flight.Reset(c.tuning)
	c.boost.Reset()
	c.machine.reset()
	c.input = input.Snapshot{}
	c.tick = 0
	c.pending = 0
}

// CurrentBoost returns the boost charge
func (c *Controller) CurrentBoost() float64 { return c.boost.Current() }

// BoostNormalized returns the boost charge as a fraction of capacity
func (c *Controller) BoostNormalized() float64 { return c.boost.Normalized() }

// BoostCapacity returns the configured boost capacity
func (c *Controller) BoostCapacity() float64 { return c.boost.Settings().Capacity }

// MaxSpeed returns the configured speed ceiling
func (c *Controller) MaxSpeed() float64 { return c.tuning.MaxSpeed }

// CanBoost reports whether boosting is armed
func (c *Controller) CanBoost() bool { return c.boost.CanBoost() }

// IsBoostingAllowed reports whether boosting is armed. The camera reads it to widen the FOV.
func (c *Controller) IsBoostingAllowed() bool { return c.boost.CanBoost() }

// CurrentSpeed returns the scalar flight speed
func (c *Controller) CurrentSpeed() float64 { return c.flight.CurrentSpeed }

// Bank returns the current bank angle in degrees
func (c *Controller) Bank() float64 { return c.flight.Bank }

// State returns the active glide state
func (c *Controller) State() Kind { return c.machine.current }

// Transitions returns the number of state changes since construction or the last Reset
func (c *Controller) Transitions() uint64 { return c.machine.transitions }

// Tick returns the number of fixed ticks run since construction or the last Reset
func (c *Controller) Tick() uint64 { return c.tick }

// IsSpeedingUp reports whether the speed-up action is held
func (c *Controller) IsSpeedingUp() bool { return c.input.SpeedingUp }

// IsSlowingDown reports whether the slow-down action is held
func (c *Controller) IsSlowingDown() bool { return c.input.SlowingDown }

func (c *Controller) Input() input.Snapshot   { return c.input }
func (c *Controller) Tuning() flight.Tuning   { return c.tuning }
func (c *Controller) Body() physics.RigidBody { return c.body }

// MeasuredSpeed is the magnitude of the body's actual velocity
func (c *Controller) MeasuredSpeed() float64 { return c.body.Velocity().Len() }
