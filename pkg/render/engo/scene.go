// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-glide/pkg/camera"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
)

// StepPriority sits between input and drawing
const StepPriority = 0

// stepSystem advances the simulation by the engo frame time
type stepSystem struct {
	sim *engine.Simulation
}

func (s *stepSystem) Priority() int                { return StepPriority }
func (s *stepSystem) Remove(basic ecs.BasicEntity) {}
func (s *stepSystem) Update(dt float32)            { s.sim.Advance(float64(dt)) }

// GlideScene is the interactive engo scene around a simulation
type GlideScene struct {
	sim      *engine.Simulation
	eventBus *event.Bus
	logger   *logging.Logger

	input    *InputSystem
	camera   *CameraSystem
	renderer *Renderer
}

// NewGlideScene creates a scene for sim
func NewGlideScene(sim *engine.Simulation, logger *logging.Logger) *GlideScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GlideScene{
		sim:      sim,
		eventBus: sim.EventBus,
		logger:   logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GlideScene) Type() string {
	return "GlideScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GlideScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GlideScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("glide scene requires an ecs world")
	}

	common.SetBackground(color.RGBA{20, 24, 36, 255})
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.input = NewInputSystem(scene.adapter, scene.reload)
	scene.camera = NewCameraSystem(scene.rig, scene.sim.Config.Camera.BaseFOV)
	scene.renderer = NewRenderer(scene.simulation)
	scene.renderer.Attach(renderSystem)

	world.AddSystem(scene.input)
	world.AddSystem(&stepSystem{sim: scene.sim})
	world.AddSystem(scene.renderer)
	world.AddSystem(scene.camera)

	scene.subscribeToEvents()
	scene.sim.Start()
}

// subscribeToEvents logs controller events
func (scene *GlideScene) subscribeToEvents() {
	ctx := scene.sim.Context()
	scene.eventBus.Subscribe(event.BoostDepleted, func(e event.Event) {
		scene.logger.Info(ctx, "out of boost")
	})
	scene.eventBus.Subscribe(event.SceneReloaded, func(e event.Event) {
		scene.logger.Info(ctx, "scene reloaded by player")
	})
}

func (scene *GlideScene) adapter() *input.Adapter        { return scene.sim.Input }
func (scene *GlideScene) rig() *camera.Rig               { return scene.sim.Camera }
func (scene *GlideScene) simulation() *engine.Simulation { return scene.sim }

// reload returns the simulation to its spawn state
func (scene *GlideScene) reload() {
	scene.sim.Reload()
}
