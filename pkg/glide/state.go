package glide

import "github.com/opd-ai/go-glide/pkg/input"

// Kind identifies one of the glide states
type Kind int

const (
	Normal Kind = iota
	Boosting
	Slow
	// a timed phase state would slot in here

	kindCount
)

var kindNames = [kindCount]string{
	Normal:   "normal",
	Boosting: "boosting",
	Slow:     "slow",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Select picks the state for this tick. Boosting wins over slowing, and boosting is
// never selected while the resource refuses it.
func Select(in input.Snapshot, canBoost bool) Kind {
	switch {
	case in.SpeedingUp && canBoost:
		return Boosting
	case in.SlowingDown:
		return Slow
	default:
		return Normal
	}
}

// handlers are the hooks of one state. enter and exit may be nil.
type handlers struct {
	enter func(c *Controller)
	tick  func(c *Controller, deltaTime float64)
	exit  func(c *Controller)
}

// slowRegenMultiplier makes slowing down a recovery opportunity
const slowRegenMultiplier = 0.85

var defaultTable = [kindCount]handlers{
	Normal: {
		tick: func(c *Controller, dt float64) {
			c.flight.ApplyNaturalMovement(c.body, c.tuning, dt)
			c.regen(1, dt)
		},
	},
	Boosting: {
		tick: func(c *Controller, dt float64) {
			c.flight.ApplyNaturalMovement(c.body, c.tuning, dt)
			if c.boost.Current() <= 0 {
				return
			}
			c.flight.CurrentSpeed = c.boost.Accelerate(c.flight.CurrentSpeed, c.acceleration(), dt)
			c.flight.ClampSpeed(c.tuning)
			if c.boost.Consume(dt) {
				c.pending |= noticeDepleted
			}
		},
	},
	Slow: {
		tick: func(c *Controller, dt float64) {
			c.flight.ApplyNaturalMovement(c.body, c.tuning, dt)
			c.flight.ApplySlowDown(c.tuning, dt)
			c.regen(slowRegenMultiplier, dt)
		},
	},
}

// machine runs the transition protocol over a handler table
type machine struct {
	table       *[kindCount]handlers
	current     Kind
	transitions uint64
}

func newMachine(table *[kindCount]handlers) machine {
	return machine{table: table, current: Normal}
}

// step moves to next, firing exit and enter only on an actual change, then ticks the
// current state. It reports whether a transition happened.
func (m *machine) step(c *Controller, next Kind, deltaTime float64) bool {
	changed := next != m.current
	if changed {
		if h := m.table[m.current].exit; h != nil {
			h(c)
		}
		m.current = next
		m.transitions++
		if h := m.table[m.current].enter; h != nil {
			h(c)
		}
	}
	m.table[m.current].tick(c, deltaTime)
	return changed
}

func (m *machine) reset() {
	m.current = Normal
	m.transitions = 0
}
