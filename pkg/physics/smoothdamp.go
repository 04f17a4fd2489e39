package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minSmoothTime avoids a division by zero for a zero smoothing time
const minSmoothTime = 0.0001

// dampFactors returns the spring frequency and the decay multiplier for one step.
// The decay uses a cubic approximation of exp(-omega*dt).
func dampFactors(smoothTime, dt float64) (omega, decay float64) {
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega = 2 / smoothTime
	x := omega * dt
	decay = 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	return omega, decay
}

// SmoothDamp moves current toward target as a critically damped spring.
// velocity carries the spring state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	omega, decay := dampFactors(smoothTime, dt)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// Never overshoot the target
	if (target-current > 0) == (output > target) {
		output = target
		*velocity = (output - target) / dt
	}
	return output
}

// SmoothDampVec3 is SmoothDamp applied to a vector
func SmoothDampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return current
	}
	omega, decay := dampFactors(smoothTime, dt)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(decay)
	output := target.Add(change.Add(temp).Mul(decay))

	toTarget := target.Sub(current)
	if toTarget.Dot(output.Sub(target)) > 0 {
		output = target
		*velocity = mgl64.Vec3{}
	}
	return output
}
