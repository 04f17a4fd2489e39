// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/glide"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// gliderSize is the drawn size of the glider in pixels
const gliderSize = 24

// shape is a drawn entity
type shape struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// StateColor returns the glider colour for a glide state
func StateColor(k glide.Kind) color.RGBA {
	switch k {
	case glide.Boosting:
		return color.RGBA{255, 140, 0, 255}
	case glide.Slow:
		return color.RGBA{80, 160, 255, 255}
	default:
		return color.RGBA{240, 240, 240, 255}
	}
}

// Renderer draws the glider and obstacles as flat shapes in the side view
type Renderer struct {
	sim       func() *engine.Simulation
	glider    *shape
	obstacles []*shape
}

// NewRenderer creates a renderer for the current simulation
func NewRenderer(sim func() *engine.Simulation) *Renderer {
	return &Renderer{sim: sim}
}

// Attach adds the drawn entities to the render system
func (r *Renderer) Attach(rs *common.RenderSystem) {
	r.glider = &shape{BasicEntity: ecs.NewBasic()}
	r.glider.Drawable = common.Triangle{}
	r.glider.Width, r.glider.Height = gliderSize, gliderSize/2
	rs.Add(&r.glider.BasicEntity, &r.glider.RenderComponent, &r.glider.SpaceComponent)

	for _, o := range r.sim().Sensor.Obstacles() {
		s := obstacleShape(o)
		r.obstacles = append(r.obstacles, s)
		rs.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
}

func obstacleShape(o physics.Sphere) *shape {
	s := &shape{BasicEntity: ecs.NewBasic()}
	s.Drawable = common.Circle{}
	s.Color = color.RGBA{120, 120, 120, 255}
	size := float32(2 * o.Radius * PixelsPerMeter)
	s.Width, s.Height = size, size
	center := Project(o.Center)
	s.Position = engo.Point{X: center.X - size/2, Y: center.Y - size/2}
	return s
}

// RenderPriority runs the renderer after the simulation step
const RenderPriority = -5

// Priority satisfies ecs.Prioritizer
func (r *Renderer) Priority() int { return RenderPriority }

// Remove satisfies the ecs.System interface
func (r *Renderer) Remove(basic ecs.BasicEntity) {}

// Update moves the glider shape to the body and tints it by state
func (r *Renderer) Update(dt float32) {
	sim := r.sim()
	if sim == nil || r.glider == nil {
		return
	}
	p := Project(sim.Body.Position())
	r.glider.Position = engo.Point{X: p.X - gliderSize/2, Y: p.Y - gliderSize/4}
	r.glider.Rotation = float32(physics.PitchDegrees(sim.Body.Orientation()))
	r.glider.Color = StateColor(sim.Controller.State())
}
