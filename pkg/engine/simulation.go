// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/camera"
	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/event"
	"github.com/opd-ai/go-glide/pkg/glide"
	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/physics"
	"github.com/opd-ai/go-glide/pkg/proximity"
	"github.com/opd-ai/go-glide/pkg/telemetry"
)

// Status is the lifecycle state of a simulation
type Status int

const (
	StatusWaiting Status = iota
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNilConfig is returned when a simulation is created without configuration
var ErrNilConfig = errors.New("engine: config is required")

// SampleSink receives one telemetry sample per fixed tick
type SampleSink func(telemetry.Sample)

// Options are the optional collaborators of a simulation
type Options struct {
	Logger    *logging.Logger
	EventBus  *event.Bus
	Metrics   *telemetry.Metrics
	Obstacles []physics.Sphere
	SessionID string
}

// Simulation owns a glider and everything around it, and runs the dual-rate loop:
// fixed ticks for the controller, one frame update for the camera.
type Simulation struct {
	Config      config.Config
	Body        *physics.Body
	Controller  *glide.Controller
	Camera      *camera.Rig
	Input       *input.Adapter
	Proximity   *proximity.Checker
	Sensor      *proximity.Sensor
	EventBus    *event.Bus
	Status      Status
	ElapsedTime float64 // simulated seconds since the last reload
	Frames      uint64

	world     *ecs.World
	glide     *GlideSystem
	camera    *CameraSystem
	obstacles []physics.Sphere
	metrics   *telemetry.Metrics
	sinks     []SampleSink
	logger    *logging.Logger
	frameDT   float64

	// carries the session id into log records
	ctx context.Context
}

// NewSimulation builds a simulation from a validated configuration
func NewSimulation(cfg *config.Config, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.EventBus == nil {
		opts.EventBus = event.NewEventBus()
	}

	sim := &Simulation{
		Config:    *cfg,
		EventBus:  opts.EventBus,
		obstacles: opts.Obstacles,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		ctx:       logging.WithSessionID(context.Background(), opts.SessionID),
		world:     &ecs.World{},
	}
	if err := sim.build(); err != nil {
		return nil, err
	}

	sim.glide = NewGlideSystem(sim)
	sim.camera = NewCameraSystem(sim)
	sim.world.AddSystem(sim.glide)
	sim.world.AddSystem(sim.camera)

	return sim, nil
}

// build creates every per-run component from the configuration
func (s *Simulation) build() error {
	spawn := mgl64.Vec3(s.Config.Simulation.SpawnPosition)

	s.Body = physics.NewBody(spawn)
	s.Body.Gravity = mgl64.Vec3{0, -s.Config.Simulation.Gravity, 0}
	s.Camera = camera.NewRig(s.Config.Camera, spawn)

	controller, err := glide.NewController(s.Config.Flight.Tuning(), s.Config.Boost.Settings(), s.Body, s.Camera, glide.Options{
		Logger: s.logger,
		Bus:    s.EventBus,
	})
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	s.Controller = controller

	s.Input = input.NewAdapter(s.Config.Input.Options(), s.Camera)

	s.Proximity = &proximity.Checker{}
	s.Sensor = proximity.NewSensor(s.Config.Proximity, s.Proximity)
	for _, o := range s.obstacles {
		s.Sensor.AddObstacle(o)
	}

	s.ElapsedTime = 0
	return nil
}

// Context returns the context that log records of this simulation carry
func (s *Simulation) Context() context.Context { return s.ctx }

// World returns the ECS world the simulation systems run in
func (s *Simulation) World() *ecs.World { return s.world }

// FixedStep returns the fixed tick duration in seconds
func (s *Simulation) FixedStep() float64 { return s.Config.Simulation.FixedStep() }

// AddSampleSink registers a receiver of per-tick telemetry
func (s *Simulation) AddSampleSink(sink SampleSink) {
	s.sinks = append(s.sinks, sink)
}

// Start begins the simulation
func (s *Simulation) Start() {
	s.Status = StatusRunning
	s.logger.Info(s.ctx, "simulation started", "tick_rate", s.Config.Simulation.TickRate)
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
}

// Stop halts the simulation
func (s *Simulation) Stop() {
	s.Status = StatusStopped
	s.logger.Info(s.ctx, "simulation stopped", "elapsed", s.ElapsedTime, "ticks", s.Controller.Tick())
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStopped,
		Source:    s,
	})
}

// Advance runs one frame of frameDT seconds. Nothing happens unless the simulation
// is running.
func (s *Simulation) Advance(frameDT float64) {
	if s.Status != StatusRunning || frameDT <= 0 {
		return
	}
	s.frameDT = frameDT
	s.world.Update(float32(frameDT))
	s.Frames++
}

// fixedTick advances everything that runs at the fixed rate
func (s *Simulation) fixedTick(dt float64) {
	s.Controller.SetInput(s.Input.Snapshot())
	s.Controller.FixedTick(s.ctx, glide.TickContext{DT: dt})
	s.Body.Integrate(dt)
	s.Sensor.Scan(s.Body.Position())
	s.ElapsedTime += dt

	sample := telemetry.Capture(s.Controller, s.ElapsedTime)
	if s.metrics != nil {
		s.metrics.Record(s.ctx, sample)
	}
	for _, sink := range s.sinks {
		sink(sample)
	}
}

// frame runs the per-frame work after the fixed ticks
func (s *Simulation) frame(dt float64) {
	s.Camera.Update(s.Body.Position(), s.Controller, dt)
}

// Reload returns the glider, camera, input and sensors to their spawn state,
// keeping the lifecycle status and the obstacle layout.
func (s *Simulation) Reload() {
	spawn := mgl64.Vec3(s.Config.Simulation.SpawnPosition)

	s.Body.Reset(spawn)
	s.Camera.Reset(spawn)
	s.Controller.Reset()
	s.Input.Reset()

	s.Sensor.Clear()
	for _, o := range s.obstacles {
		s.Sensor.AddObstacle(o)
	}

	s.ElapsedTime = 0
	s.glide.reset()

	s.logger.Info(s.ctx, "scene reloaded")
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SceneReloaded,
		Source:    s,
	})
}
