package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	look   mgl64.Vec2
	device Device
	calls  int
}

func (r *recordingSink) SetLookInput(v mgl64.Vec2) { r.look = v; r.calls++ }
func (r *recordingSink) SetDevice(d Device)        { r.device = d }

func TestAdapter_HoldSemantics(t *testing.T) {
	a := NewAdapter(Options{})

	a.Speedup(Performed)
	assert.True(t, a.Snapshot().SpeedingUp)
	a.Speedup(Canceled)
	assert.False(t, a.Snapshot().SpeedingUp)

	a.Slowdown(Performed)
	assert.True(t, a.Snapshot().SlowingDown)
	a.Slowdown(Canceled)
	assert.False(t, a.Snapshot().SlowingDown)
}

func TestAdapter_ToggleSemantics(t *testing.T) {
	a := NewAdapter(Options{SpeedUpToggle: true, SlowDownToggle: true})

	a.Speedup(Performed)
	a.Speedup(Canceled)
	assert.True(t, a.Snapshot().SpeedingUp, "release must not clear a toggle")

	a.Speedup(Performed)
	assert.False(t, a.Snapshot().SpeedingUp)

	a.Slowdown(Performed)
	assert.True(t, a.Snapshot().SlowingDown)
}

func TestAdapter_LookForwardsToSinks(t *testing.T) {
	sink := &recordingSink{}
	a := NewAdapter(Options{}, sink)

	a.Look(mgl64.Vec2{0.5, -0.25}, Gamepad)

	assert.Equal(t, mgl64.Vec2{0.5, -0.25}, a.Snapshot().Look)
	assert.Equal(t, Gamepad, a.Device())
	assert.Equal(t, mgl64.Vec2{0.5, -0.25}, sink.look)
	assert.Equal(t, Gamepad, sink.device)

	other := &recordingSink{}
	a.AddSink(other)
	a.Look(mgl64.Vec2{1, 0}, Mouse)
	assert.Equal(t, 2, sink.calls)
	assert.Equal(t, 1, other.calls)
	assert.Equal(t, "mouse", other.device.String())
}

func TestAdapter_Reset(t *testing.T) {
	a := NewAdapter(Options{SpeedUpToggle: true})
	a.Speedup(Performed)
	a.Look(mgl64.Vec2{1, 1}, Mouse)

	a.Reset()
	assert.Equal(t, Snapshot{}, a.Snapshot())
}

func TestAdapter_SetButtonsIgnoresToggle(t *testing.T) {
	a := NewAdapter(Options{SpeedUpToggle: true, SlowDownToggle: true})
	a.SetButtons(true, false)
	a.SetButtons(true, false)
	assert.True(t, a.Snapshot().SpeedingUp)
	assert.False(t, a.Snapshot().SlowingDown)
}
