// Package input turns raw device actions into the per-tick snapshot a glider reads.
// Hold and toggle semantics are resolved here, so consumers only see booleans.
package input

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is the input state read once per tick
type Snapshot struct {
	Look        mgl64.Vec2
	SpeedingUp  bool
	SlowingDown bool
}

// Phase is the lifecycle stage of a button action
type Phase int

const (
	Performed Phase = iota
	Canceled
)

// Device identifies the source of look input
type Device int

const (
	Mouse Device = iota
	Gamepad
)

func (d Device) String() string {
	if d == Gamepad {
		return "gamepad"
	}
	return "mouse"
}

// LookSink receives look input as it arrives
type LookSink interface {
	SetLookInput(look mgl64.Vec2)
	SetDevice(d Device)
}

// Options selects toggle behaviour per action
type Options struct {
	SpeedUpToggle  bool
	SlowDownToggle bool
}

// Adapter accumulates device actions into a Snapshot
type Adapter struct {
	opts   Options
	state  Snapshot
	device Device
	sinks  []LookSink
}

// NewAdapter creates an adapter that forwards look input to sinks
func NewAdapter(opts Options, sinks ...LookSink) *Adapter {
	return &Adapter{opts: opts, sinks: sinks}
}

// AddSink registers another receiver of look input
func (a *Adapter) AddSink(s LookSink) {
	a.sinks = append(a.sinks, s)
}

// Look records look input from a device
func (a *Adapter) Look(v mgl64.Vec2, d Device) {
	a.state.Look = v
	a.device = d
	for _, s := range a.sinks {
		s.SetDevice(d)
		s.SetLookInput(v)
	}
}

// Speedup handles the speed-up action
func (a *Adapter) Speedup(p Phase) {
	a.state.SpeedingUp = resolve(a.state.SpeedingUp, a.opts.SpeedUpToggle, p)
}

// Slowdown handles the slow-down action
func (a *Adapter) Slowdown(p Phase) {
	a.state.SlowingDown = resolve(a.state.SlowingDown, a.opts.SlowDownToggle, p)
}

// resolve applies hold or toggle semantics to a button phase
func resolve(current, toggle bool, p Phase) bool {
	if toggle {
		if p == Performed {
			return !current
		}
		return current
	}
	return p == Performed
}

// SetButtons sets both speed actions directly, bypassing toggle handling.
// Used for scripted and replayed input.
func (a *Adapter) SetButtons(speedingUp, slowingDown bool) {
	a.state.SpeedingUp = speedingUp
	a.state.SlowingDown = slowingDown
}

// Snapshot returns the current input state
func (a *Adapter) Snapshot() Snapshot { return a.state }

// Device returns the device that last produced look input
func (a *Adapter) Device() Device { return a.device }

// Reset clears all held and toggled actions
func (a *Adapter) Reset() {
	a.state = Snapshot{}
}
