// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axes of a body. Forward is +Z and up is +Y; positive pitch tilts the nose down.
var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	LocalForward = mgl64.Vec3{0, 0, 1}
	LocalUp      = mgl64.Vec3{0, 1, 0}
	LocalRight   = mgl64.Vec3{1, 0, 0}
)

// Euler builds an orientation from angles in degrees.
// Roll is applied first (about Z), then pitch (about X), then yaw (about Y).
func Euler(pitch, yaw, roll float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), LocalUp)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), LocalRight)
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), LocalForward)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// Forward returns the world-space forward direction of an orientation
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(LocalForward)
}

// Up returns the world-space up direction of an orientation
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(LocalUp)
}

// PitchDegrees extracts the pitch of an orientation, normalized to (-180, 180].
// Diving yields a positive pitch.
func PitchDegrees(q mgl64.Quat) float64 {
	f := Forward(q)
	return NormalizeAngle(mgl64.RadToDeg(math.Asin(Clamp(-f.Y(), -1, 1))))
}

// Slerp interpolates between two orientations along the shortest arc.
// t is clamped to [0, 1].
func Slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}
