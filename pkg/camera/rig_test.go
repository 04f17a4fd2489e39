package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-glide/pkg/input"
)

const frame = 1.0 / 60

type stubTelemetry struct {
	allowed, speedingUp, slowingDown bool
	normalized                       float64
}

func (s stubTelemetry) IsBoostingAllowed() bool  { return s.allowed }
func (s stubTelemetry) BoostNormalized() float64 { return s.normalized }
func (s stubTelemetry) IsSpeedingUp() bool       { return s.speedingUp }
func (s stubTelemetry) IsSlowingDown() bool      { return s.slowingDown }

func run(r *Rig, target mgl64.Vec3, t Telemetry, frames int) {
	for i := 0; i < frames; i++ {
		r.Update(target, t, frame)
	}
}

func TestRig_FOV(t *testing.T) {
	tests := []struct {
		name      string
		telemetry stubTelemetry
		want      float64
	}{
		{"cruising", stubTelemetry{allowed: true}, 60},
		{"boosting at full charge", stubTelemetry{allowed: true, speedingUp: true, normalized: 1}, 70},
		{"boosting at half charge", stubTelemetry{allowed: true, speedingUp: true, normalized: 0.5}, 65},
		{"speeding up while disarmed", stubTelemetry{speedingUp: true, normalized: 1}, 60},
		{"slowing down", stubTelemetry{allowed: true, slowingDown: true}, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRig(DefaultSettings(), mgl64.Vec3{})
			run(r, mgl64.Vec3{}, tt.telemetry, 120)
			assert.InDelta(t, tt.want, r.FOV(), 1e-3)
		})
	}
}

func TestRig_FollowConvergesBehindTarget(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	target := mgl64.Vec3{10, 5, 20}

	run(r, target, nil, 300)

	want := target.Add(mgl64.Vec3{0, 2, -6})
	assert.InDelta(t, 0, r.Position().Sub(want).Len(), 1e-3)
}

func TestRig_DynamicOffsetPerDevice(t *testing.T) {
	mouse := NewRig(DefaultSettings(), mgl64.Vec3{})
	mouse.SetLookInput(mgl64.Vec2{-1, 1})
	pad := NewRig(DefaultSettings(), mgl64.Vec3{})
	pad.SetDevice(input.Gamepad)
	pad.SetLookInput(mgl64.Vec2{-1, 1})

	run(mouse, mgl64.Vec3{}, nil, 300)
	run(pad, mgl64.Vec3{}, nil, 300)

	assert.InDelta(t, -0.5, mouse.Offset().X(), 1e-3)
	assert.InDelta(t, -0.5, mouse.Offset().Y(), 1e-3)
	assert.InDelta(t, -0.25, pad.Offset().X(), 1e-3)
	assert.InDelta(t, -0.25, pad.Offset().Y(), 1e-3)
}

func TestRig_PitchIsClamped(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	r.SetLookInput(mgl64.Vec2{0, -500})

	for i := 0; i < 600; i++ {
		r.Update(mgl64.Vec3{}, nil, frame)
		pitch, _ := r.Euler()
		assert.LessOrEqual(t, pitch, 80.0+1e-9)
	}
	pitch, _ := r.Euler()
	assert.InDelta(t, 80, pitch, 1e-3)
}

func TestRig_MouseLookTurns(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	r.SetLookInput(mgl64.Vec2{20, 0})
	run(r, mgl64.Vec3{}, nil, 60)

	_, yaw := r.Euler()
	assert.Greater(t, yaw, 0.0)
}

func TestRig_GamepadDeadzone(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	r.SetDevice(input.Gamepad)
	r.SetLookInput(mgl64.Vec2{0.1, 0.05})
	run(r, mgl64.Vec3{}, nil, 60)

	pitch, yaw := r.Euler()
	assert.Zero(t, pitch)
	assert.Zero(t, yaw)
}

func TestRig_ImplementsLookSink(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	a := input.NewAdapter(input.Options{}, r)
	a.Look(mgl64.Vec2{0.5, 0}, input.Gamepad)

	assert.Equal(t, input.Gamepad, r.device)
	assert.Equal(t, mgl64.Vec2{0.5, 0}, r.look)
}

func TestRig_ZeroDeltaIsNoOp(t *testing.T) {
	r := NewRig(DefaultSettings(), mgl64.Vec3{})
	before := r.Position()
	r.Update(mgl64.Vec3{100, 0, 0}, nil, 0)
	assert.Equal(t, before, r.Position())
}
