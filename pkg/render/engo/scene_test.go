// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/glide"
	"github.com/opd-ai/go-glide/pkg/input"
)

func newTestSimulation(t *testing.T) *engine.Simulation {
	t.Helper()
	sim, err := engine.NewSimulation(config.DefaultConfig(), engine.Options{})
	require.NoError(t, err)
	return sim
}

// TestNewGlideScene tests the creation of a new glide scene
func TestNewGlideScene(t *testing.T) {
	sim := newTestSimulation(t)
	scene := NewGlideScene(sim, nil)

	require.NotNil(t, scene)
	assert.Same(t, sim, scene.sim)
	assert.Same(t, sim.EventBus, scene.eventBus)
	assert.NotNil(t, scene.logger)
	assert.Equal(t, "GlideScene", scene.Type())

	// Preload is a no-op
	scene.Preload()
}

func TestGlideScene_ReloadResetsSimulation(t *testing.T) {
	sim := newTestSimulation(t)
	scene := NewGlideScene(sim, nil)
	sim.Start()

	scene.adapter().SetButtons(true, false)
	sim.Advance(0.5)
	require.Less(t, sim.Controller.CurrentBoost(), 100.0)

	scene.reload()

	assert.False(t, scene.adapter().Snapshot().SpeedingUp)
	assert.Equal(t, 100.0, sim.Controller.CurrentBoost())
	assert.Same(t, sim.Input, scene.adapter())
	assert.Same(t, sim.Camera, scene.rig())
}

func TestInputSystem_Handle(t *testing.T) {
	adapter := input.NewAdapter(input.Options{})
	reloads := 0
	is := NewInputSystem(func() *input.Adapter { return adapter }, func() { reloads++ })

	assert.Equal(t, InputPriority, is.Priority())

	is.handle(Frame{Look: mgl64.Vec2{2, -1}, SpeedUpPressed: true})
	snap := adapter.Snapshot()
	assert.True(t, snap.SpeedingUp)
	assert.False(t, snap.SlowingDown)
	assert.Equal(t, mgl64.Vec2{2, -1}, snap.Look)
	assert.Equal(t, input.Mouse, adapter.Device())

	// held buttons produce no edge and keep their state
	is.handle(Frame{})
	assert.True(t, adapter.Snapshot().SpeedingUp)
	assert.Equal(t, mgl64.Vec2{}, adapter.Snapshot().Look)

	is.handle(Frame{SpeedUpReleased: true, SlowDownPressed: true})
	snap = adapter.Snapshot()
	assert.False(t, snap.SpeedingUp)
	assert.True(t, snap.SlowingDown)

	is.handle(Frame{SlowDownReleased: true, Reload: true})
	assert.False(t, adapter.Snapshot().SlowingDown)
	assert.Equal(t, 1, reloads)
}

func TestInputSystem_ToggleMode(t *testing.T) {
	adapter := input.NewAdapter(input.Options{SpeedUpToggle: true})
	is := NewInputSystem(func() *input.Adapter { return adapter }, nil)

	is.handle(Frame{SpeedUpPressed: true})
	is.handle(Frame{SpeedUpReleased: true})
	assert.True(t, adapter.Snapshot().SpeedingUp)

	is.handle(Frame{SpeedUpPressed: true})
	assert.False(t, adapter.Snapshot().SpeedingUp)
}

func TestInputSystem_NilAdapter(t *testing.T) {
	is := NewInputSystem(func() *input.Adapter { return nil }, nil)
	assert.NotPanics(t, func() { is.handle(Frame{SpeedUpPressed: true, Reload: true}) })
}

func TestStateColor(t *testing.T) {
	normal := StateColor(glide.Normal)
	assert.NotEqual(t, normal, StateColor(glide.Boosting))
	assert.NotEqual(t, normal, StateColor(glide.Slow))
	assert.NotEqual(t, StateColor(glide.Boosting), StateColor(glide.Slow))
	assert.Equal(t, uint8(255), normal.A)
}

func TestRenderer_UpdateTracksBody(t *testing.T) {
	sim := newTestSimulation(t)
	r := NewRenderer(func() *engine.Simulation { return sim })

	// not attached yet
	assert.NotPanics(t, func() { r.Update(0.016) })

	r.glider = &shape{}
	sim.Body.SetPosition(mgl64.Vec3{0, 10, 5})
	r.Update(0.016)

	want := Project(mgl64.Vec3{0, 10, 5})
	assert.InDelta(t, want.X-gliderSize/2, r.glider.Position.X, 1e-4)
	assert.InDelta(t, want.Y-gliderSize/4, r.glider.Position.Y, 1e-4)
	assert.Equal(t, StateColor(sim.Controller.State()), r.glider.Color)
}
