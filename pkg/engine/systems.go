package engine

import (
	"math"

	"github.com/EngoEngine/ecs"
)

// System priorities. Higher values run first, so the glider is stepped before the
// camera reads it.
const (
	GlidePriority  = 10
	CameraPriority = 0
)

// GlideSystem runs fixed ticks from the frame time it accumulates
type GlideSystem struct {
	sim         *Simulation
	accumulator float64
	steps       uint64
}

// NewGlideSystem creates the fixed-rate system for sim
func NewGlideSystem(sim *Simulation) *GlideSystem {
	return &GlideSystem{sim: sim}
}

// Priority satisfies ecs.Prioritizer
func (gs *GlideSystem) Priority() int { return GlidePriority }

// Remove satisfies the ecs.System interface
func (gs *GlideSystem) Remove(ecs.BasicEntity) {}

// Update consumes the frame time in fixed steps. The float32 delta from the world is
// ignored in favour of the frame delta the simulation recorded.
func (gs *GlideSystem) Update(float32) {
	cfg := gs.sim.Config.Simulation
	step := cfg.FixedStep()
	if step <= 0 {
		return
	}

	gs.accumulator += math.Min(gs.sim.frameDT, cfg.MaxFrameDelta)

	n := 0
	for gs.accumulator >= step && n < cfg.MaxStepsPerFrame {
		gs.sim.fixedTick(step)
		gs.accumulator -= step
		gs.steps++
		n++
	}

	// drop the backlog instead of spiralling
	if gs.accumulator >= step {
		gs.accumulator = math.Mod(gs.accumulator, step)
	}
}

// Steps returns the number of fixed ticks run since the last reload
func (gs *GlideSystem) Steps() uint64 { return gs.steps }

// Alpha returns how far the accumulator is into the next fixed tick, in [0, 1)
func (gs *GlideSystem) Alpha() float64 {
	step := gs.sim.Config.Simulation.FixedStep()
	if step <= 0 {
		return 0
	}
	return gs.accumulator / step
}

func (gs *GlideSystem) reset() {
	gs.accumulator = 0
	gs.steps = 0
}

// CameraSystem updates the camera rig once per frame
type CameraSystem struct {
	sim *Simulation
}

// NewCameraSystem creates the per-frame camera system for sim
func NewCameraSystem(sim *Simulation) *CameraSystem {
	return &CameraSystem{sim: sim}
}

// Priority satisfies ecs.Prioritizer
func (cs *CameraSystem) Priority() int { return CameraPriority }

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(ecs.BasicEntity) {}

// Update follows the glider and eases the field of view
func (cs *CameraSystem) Update(float32) {
	cs.sim.frame(cs.sim.frameDT)
}
