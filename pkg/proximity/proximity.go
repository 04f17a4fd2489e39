// Package proximity tracks how many obstacles sit within the close, mid and far
// ranges around the glider.
package proximity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/physics"
)

// Range is one of the detection shells around the glider
type Range int

const (
	Close Range = iota
	Mid
	Far

	rangeCount
)

var rangeNames = [rangeCount]string{Close: "Close", Mid: "Mid", Far: "Far"}

func (r Range) String() string {
	if r < 0 || r >= rangeCount {
		return fmt.Sprintf("Range(%d)", int(r))
	}
	return rangeNames[r]
}

// Checker counts obstacles per range
type Checker struct {
	counts [rangeCount]int
}

// UpdateCount records an obstacle entering or leaving a range.
// Counts never drop below zero.
func (c *Checker) UpdateCount(r Range, entering bool) {
	if r < 0 || r >= rangeCount {
		return
	}
	if entering {
		c.counts[r]++
	} else if c.counts[r] > 0 {
		c.counts[r]--
	}
}

func (c *Checker) Count(r Range) int {
	if r < 0 || r >= rangeCount {
		return 0
	}
	return c.counts[r]
}

func (c *Checker) IsClose() bool { return c.counts[Close] > 0 }
func (c *Checker) IsMid() bool   { return c.counts[Mid] > 0 }
func (c *Checker) IsFar() bool   { return c.counts[Far] > 0 }

// Reset clears all counts
func (c *Checker) Reset() { c.counts = [rangeCount]int{} }

// Radii are the outer radius of each range
type Radii struct {
	Close float64 `json:"close" mapstructure:"close"`
	Mid   float64 `json:"mid" mapstructure:"mid"`
	Far   float64 `json:"far" mapstructure:"far"`
}

// DefaultRadii returns the stock detection shells
func DefaultRadii() Radii {
	return Radii{Close: 3, Mid: 8, Far: 20}
}

func (r Radii) of(rg Range) float64 {
	switch rg {
	case Close:
		return r.Close
	case Mid:
		return r.Mid
	default:
		return r.Far
	}
}

// Sensor overlaps range spheres with obstacles and feeds enter and exit updates to a Checker
type Sensor struct {
	radii     Radii
	obstacles []physics.Sphere
	inside    [rangeCount]map[int]bool
	checker   *Checker
}

// NewSensor creates a sensor reporting into checker
func NewSensor(radii Radii, checker *Checker) *Sensor {
	s := &Sensor{radii: radii, checker: checker}
	for i := range s.inside {
		s.inside[i] = make(map[int]bool)
	}
	return s
}

// AddObstacle registers an obstacle and returns its index
func (s *Sensor) AddObstacle(o physics.Sphere) int {
	s.obstacles = append(s.obstacles, o)
	return len(s.obstacles) - 1
}

func (s *Sensor) Obstacles() []physics.Sphere { return s.obstacles }

// Scan overlaps every range around position with the obstacles and reports changes
// since the previous scan.
func (s *Sensor) Scan(position mgl64.Vec3) {
	for rg := Range(0); rg < rangeCount; rg++ {
		shell := physics.Sphere{Center: position, Radius: s.radii.of(rg)}
		for i, o := range s.obstacles {
			now := shell.Overlaps(o)
			if now == s.inside[rg][i] {
				continue
			}
			if now {
				s.inside[rg][i] = true
			} else {
				delete(s.inside[rg], i)
			}
			s.checker.UpdateCount(rg, now)
		}
	}
}

// Clear forgets all obstacles and resets the checker
func (s *Sensor) Clear() {
	s.obstacles = nil
	for i := range s.inside {
		s.inside[i] = make(map[int]bool)
	}
	s.checker.Reset()
}
