// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/input"
)

// Button and axis names registered with engo
const (
	ButtonSpeedUp  = "speedup"
	ButtonSlowDown = "slowdown"
	ButtonReload   = "reload"
	AxisLookX      = "look x"
	AxisLookY      = "look y"
)

// InputPriority runs input before the simulation step
const InputPriority = 20

// Frame is the raw device state read in one engo frame
type Frame struct {
	Look                              mgl64.Vec2
	SpeedUpPressed, SpeedUpReleased   bool
	SlowDownPressed, SlowDownReleased bool
	Reload                            bool
}

// InputSystem feeds engo keyboard and mouse input into an input adapter
type InputSystem struct {
	adapter  func() *input.Adapter
	onReload func()
	read     func() Frame
}

// NewInputSystem creates an input system. adapter is looked up every frame because a
// scene reload replaces it.
func NewInputSystem(adapter func() *input.Adapter, onReload func()) *InputSystem {
	return &InputSystem{
		adapter:  adapter,
		onReload: onReload,
		read:     readFrame,
	}
}

// Priority satisfies ecs.Prioritizer
func (is *InputSystem) Priority() int { return InputPriority }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads engo input and forwards it
func (is *InputSystem) Update(dt float32) {
	is.handle(is.read())
}

// handle applies one frame of input
func (is *InputSystem) handle(f Frame) {
	if f.Reload && is.onReload != nil {
		is.onReload()
	}

	a := is.adapter()
	if a == nil {
		return
	}
	a.Look(f.Look, input.Mouse)

	switch {
	case f.SpeedUpPressed:
		a.Speedup(input.Performed)
	case f.SpeedUpReleased:
		a.Speedup(input.Canceled)
	}
	switch {
	case f.SlowDownPressed:
		a.Slowdown(input.Performed)
	case f.SlowDownReleased:
		a.Slowdown(input.Canceled)
	}
}

// readFrame samples the engo input state
func readFrame() Frame {
	speedUp := engo.Input.Button(ButtonSpeedUp)
	slowDown := engo.Input.Button(ButtonSlowDown)
	return Frame{
		Look: mgl64.Vec2{
			float64(engo.Input.Axis(AxisLookX).Value()),
			float64(engo.Input.Axis(AxisLookY).Value()),
		},
		SpeedUpPressed:   speedUp.JustPressed(),
		SpeedUpReleased:  speedUp.JustReleased(),
		SlowDownPressed:  slowDown.JustPressed(),
		SlowDownReleased: slowDown.JustReleased(),
		Reload:           engo.Input.Button(ButtonReload).JustPressed(),
	}
}

// SetupInputBindings registers the glide key and mouse bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonSpeedUp, engo.KeyLeftShift, engo.KeySpace)
	engo.Input.RegisterButton(ButtonSlowDown, engo.KeyLeftControl, engo.KeyS)
	engo.Input.RegisterButton(ButtonReload, engo.KeyR)
	engo.Input.RegisterAxis(AxisLookX, engo.NewAxisMouse(engo.AxisMouseHori))
	engo.Input.RegisterAxis(AxisLookY, engo.NewAxisMouse(engo.AxisMouseVert))
}
