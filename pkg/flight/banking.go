package flight

import (
	"math"

	"github.com/opd-ai/go-glide/pkg/physics"
)

// steerDeadzone is the look input below which the glider levels out
const steerDeadzone = 0.01

// ControlFactor scales steering: speeding up makes the glider harder to turn,
// slowing down makes it easier.
func ControlFactor(speedingUp, slowingDown bool, t Tuning) float64 {
	switch {
	case speedingUp:
		return t.ControlHardnessFast
	case slowingDown:
		return t.ControlSoftnessSlow
	default:
		return 1
	}
}

// BankTarget returns the roll the glider leans toward for the given horizontal look.
// Look input is treated as an axis in [-1, 1].
func BankTarget(lookX, controlFactor float64, t Tuning) float64 {
	if math.Abs(lookX) <= steerDeadzone {
		return 0
	}
	return -physics.Clamp(lookX, -1, 1) * t.BankStrength * controlFactor
}

// UpdateBank eases the bank angle toward its target. Steering uses BankSteerRate,
// levelling out uses BankReturnSpeed.
func (s *State) UpdateBank(lookX, controlFactor float64, t Tuning, deltaTime float64) {
	target := BankTarget(lookX, controlFactor, t)
	rate := t.BankReturnSpeed
	if target != 0 {
		rate = t.BankSteerRate
	}
	s.Bank = physics.Lerp(s.Bank, target, deltaTime*rate)
}

// Pivot supplies the pitch and yaw, in degrees, the glider should face
type Pivot interface {
	Euler() (pitch, yaw float64)
}

// ApplyRotation turns the body toward the pivot's pitch and yaw with the current bank as roll
func (s *State) ApplyRotation(body physics.RigidBody, pivot Pivot, t Tuning, deltaTime float64) {
	pitch, yaw := pivot.Euler()
	desired := physics.Euler(pitch, yaw, s.Bank)
	body.SetOrientation(physics.Slerp(body.Orientation(), desired, t.RotationSpeed*deltaTime))
}
