package physics

import "github.com/go-gl/mathgl/mgl64"

// RigidBody is the physics capability a controller drives.
// Collision resolution is the body's concern, not the controller's.
type RigidBody interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Position() mgl64.Vec3
	Orientation() mgl64.Quat
	SetOrientation(q mgl64.Quat)
}

// Body is a headless kinematic rigid body
type Body struct {
	// Gravity is added to the velocity on every Integrate
	Gravity mgl64.Vec3

	position    mgl64.Vec3
	velocity    mgl64.Vec3
	orientation mgl64.Quat
}

// NewBody creates a body at rest at position, facing +Z
func NewBody(position mgl64.Vec3) *Body {
	return &Body{
		position:    position,
		orientation: mgl64.QuatIdent(),
	}
}

func (b *Body) Velocity() mgl64.Vec3        { return b.velocity }
func (b *Body) SetVelocity(v mgl64.Vec3)    { b.velocity = v }
func (b *Body) Position() mgl64.Vec3        { return b.position }
func (b *Body) SetPosition(p mgl64.Vec3)    { b.position = p }
func (b *Body) Orientation() mgl64.Quat     { return b.orientation }
func (b *Body) SetOrientation(q mgl64.Quat) { b.orientation = q.Normalize() }

// Speed returns the magnitude of the body's velocity
func (b *Body) Speed() float64 {
	return b.velocity.Len()
}

// Integrate applies gravity and advances the position by the current velocity
func (b *Body) Integrate(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	b.velocity = b.velocity.Add(b.Gravity.Mul(deltaTime))
	b.position = b.position.Add(b.velocity.Mul(deltaTime))
}

// Reset places the body at rest at position, facing +Z
func (b *Body) Reset(position mgl64.Vec3) {
	b.position = position
	b.velocity = mgl64.Vec3{}
	b.orientation = mgl64.QuatIdent()
}
