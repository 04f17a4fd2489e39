package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/input"
)

// ScriptStep holds one input snapshot for a duration in seconds
type ScriptStep struct {
	Duration float64
	Input    input.Snapshot
}

// Script is a scripted input timeline for headless runs
type Script []ScriptStep

// Duration returns the total length of the script in seconds
func (sc Script) Duration() float64 {
	var total float64
	for _, step := range sc {
		total += step.Duration
	}
	return total
}

// Run plays the script through sim at a fixed frame delta and returns the number of
// frames advanced.
func (sc Script) Run(sim *Simulation, frameDT float64) int {
	if frameDT <= 0 {
		return 0
	}
	frames := 0
	for _, step := range sc {
		sim.ApplyInput(step.Input)
		n := int(math.Round(step.Duration / frameDT))
		for i := 0; i < n; i++ {
			sim.Advance(frameDT)
			frames++
		}
	}
	return frames
}

// ApplyInput pushes a whole snapshot through the input adapter as mouse input
func (s *Simulation) ApplyInput(snap input.Snapshot) {
	s.Input.Look(snap.Look, input.Mouse)
	s.Input.SetButtons(snap.SpeedingUp, snap.SlowingDown)
}

// mouse look deltas per frame used by the stock scripts
var (
	lookDown  = mgl64.Vec2{0, -10}
	lookUp    = mgl64.Vec2{0, 10}
	lookRight = mgl64.Vec2{12, 0}
)

var scripts = map[string]Script{
	"cruise": {
		{Duration: 10},
	},
	"boost": {
		{Duration: 8, Input: input.Snapshot{SpeedingUp: true}},
		{Duration: 4},
	},
	"slow": {
		{Duration: 3, Input: input.Snapshot{SpeedingUp: true}},
		{Duration: 5, Input: input.Snapshot{SlowingDown: true}},
	},
	"dive": {
		{Duration: 1.5, Input: input.Snapshot{Look: lookDown}},
		{Duration: 4},
		{Duration: 2, Input: input.Snapshot{Look: lookUp}},
		{Duration: 2},
	},
	"mixed": {
		{Duration: 2},
		{Duration: 6, Input: input.Snapshot{SpeedingUp: true, Look: lookRight}},
		{Duration: 1, Input: input.Snapshot{Look: lookDown}},
		{Duration: 3, Input: input.Snapshot{SlowingDown: true}},
		{Duration: 2, Input: input.Snapshot{SpeedingUp: true, SlowingDown: true}},
		{Duration: 4},
	},
}

// ScriptNames lists the stock scripts
func ScriptNames() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamedScript returns a copy of a stock script
func NamedScript(name string) (Script, error) {
	sc, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	return append(Script(nil), sc...), nil
}
