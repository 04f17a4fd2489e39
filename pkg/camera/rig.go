// Package camera implements the follow camera that frames the glider and supplies the
// pitch and yaw the glider steers toward.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/input"
	"github.com/opd-ai/go-glide/pkg/physics"
)

// Settings tune the camera rig
type Settings struct {
	FollowSmoothTime float64    `json:"follow_smooth_time" mapstructure:"follow_smooth_time"`
	BaseOffset       [3]float64 `json:"base_offset" mapstructure:"base_offset"`

	BaseFOV       float64 `json:"base_fov" mapstructure:"base_fov"`
	FOVBoost      float64 `json:"fov_boost" mapstructure:"fov_boost"`
	FOVSlow       float64 `json:"fov_slow" mapstructure:"fov_slow"`
	FOVSmoothTime float64 `json:"fov_smooth_time" mapstructure:"fov_smooth_time"`

	MaxVerticalAngle      float64 `json:"max_vertical_angle" mapstructure:"max_vertical_angle"`
	MouseSensitivity      float64 `json:"mouse_sensitivity" mapstructure:"mouse_sensitivity"`
	ControllerSensitivity float64 `json:"controller_sensitivity" mapstructure:"controller_sensitivity"`
	ControllerDeadzone    float64 `json:"controller_deadzone" mapstructure:"controller_deadzone"`
	RotationSmoothTime    float64 `json:"rotation_smooth_time" mapstructure:"rotation_smooth_time"`

	MouseOffset      float64 `json:"mouse_offset" mapstructure:"mouse_offset"`
	ControllerOffset float64 `json:"controller_offset" mapstructure:"controller_offset"`
	OffsetSmoothTime float64 `json:"offset_smooth_time" mapstructure:"offset_smooth_time"`
}

// DefaultSettings returns the stock camera tuning
func DefaultSettings() Settings {
	return Settings{
		FollowSmoothTime:      0.15,
		BaseOffset:            [3]float64{0, 2, -6},
		BaseFOV:               60,
		FOVBoost:              10,
		FOVSlow:               5,
		FOVSmoothTime:         0.08,
		MaxVerticalAngle:      80,
		MouseSensitivity:      0.05,
		ControllerSensitivity: 1,
		ControllerDeadzone:    0.15,
		RotationSmoothTime:    0.02,
		MouseOffset:           0.5,
		ControllerOffset:      0.25,
		OffsetSmoothTime:      0.2,
	}
}

// offsetThreshold is the look input needed to shift the framing
const offsetThreshold = 0.1

// Telemetry is what the rig reads from the glide controller each frame
type Telemetry interface {
	IsBoostingAllowed() bool
	BoostNormalized() float64
	IsSpeedingUp() bool
	IsSlowingDown() bool
}

// Rig is a smoothed follow camera
type Rig struct {
	settings Settings

	position       mgl64.Vec3
	followVelocity mgl64.Vec3
	offset         mgl64.Vec3
	offsetVelocity mgl64.Vec3

	yaw, pitch                 float64
	yawVelocity, pitchVelocity float64

	fov         float64
	fovVelocity float64

	look   mgl64.Vec2
	device input.Device
}

// NewRig creates a rig placed behind position
func NewRig(settings Settings, position mgl64.Vec3) *Rig {
	r := &Rig{settings: settings}
	r.Reset(position)
	return r
}

// Reset snaps the rig behind position with a level view
func (r *Rig) Reset(position mgl64.Vec3) {
	r.position = position.Add(r.baseOffset())
	r.followVelocity = mgl64.Vec3{}
	r.offset = mgl64.Vec3{}
	r.offsetVelocity = mgl64.Vec3{}
	r.yaw, r.pitch = 0, 0
	r.yawVelocity, r.pitchVelocity = 0, 0
	r.fov = r.settings.BaseFOV
	r.fovVelocity = 0
	r.look = mgl64.Vec2{}
}

func (r *Rig) baseOffset() mgl64.Vec3 {
	return mgl64.Vec3(r.settings.BaseOffset)
}

// SetLookInput records look input for the next frame
func (r *Rig) SetLookInput(look mgl64.Vec2) { r.look = look }

// SetDevice selects mouse or gamepad handling of look input
func (r *Rig) SetDevice(d input.Device) { r.device = d }

// Update runs one frame: follow the target, rotate from look input, ease the FOV
func (r *Rig) Update(target mgl64.Vec3, t Telemetry, deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	r.follow(target, deltaTime)
	r.rotate(deltaTime)
	if t != nil {
		r.easeFOV(t, deltaTime)
	}
}

func (r *Rig) follow(target mgl64.Vec3, dt float64) {
	amount := r.settings.MouseOffset
	if r.device == input.Gamepad {
		amount = r.settings.ControllerOffset
	}

	var want mgl64.Vec3
	if math.Abs(r.look.X()) > offsetThreshold {
		want[0] = math.Copysign(amount, r.look.X())
	}
	// looking down lowers the framing
	if r.look.Y() > offsetThreshold {
		want[1] = -amount
	}
	r.offset = physics.SmoothDampVec3(r.offset, want, &r.offsetVelocity, r.settings.OffsetSmoothTime, dt)

	desired := target.Add(r.baseOffset()).Add(r.offset)
	r.position = physics.SmoothDampVec3(r.position, desired, &r.followVelocity, r.settings.FollowSmoothTime, dt)
}

func (r *Rig) rotate(dt float64) {
	look := r.look
	sensitivity := r.settings.MouseSensitivity
	if r.device == input.Gamepad {
		sensitivity = r.settings.ControllerSensitivity
		if look.Len() < r.settings.ControllerDeadzone {
			look = mgl64.Vec2{}
		}
	}

	targetYaw := r.yaw + look.X()*sensitivity
	targetPitch := physics.Clamp(r.pitch-look.Y()*sensitivity, -r.settings.MaxVerticalAngle, r.settings.MaxVerticalAngle)

	r.yaw = physics.SmoothDamp(r.yaw, targetYaw, &r.yawVelocity, r.settings.RotationSmoothTime, dt)
	r.pitch = physics.SmoothDamp(r.pitch, targetPitch, &r.pitchVelocity, r.settings.RotationSmoothTime, dt)
}

func (r *Rig) easeFOV(t Telemetry, dt float64) {
	target := r.settings.BaseFOV
	switch {
	case t.IsSpeedingUp() && t.IsBoostingAllowed():
		target += r.settings.FOVBoost * physics.SmoothStep(0, 1, t.BoostNormalized())
	case t.IsSlowingDown():
		target -= r.settings.FOVSlow
	}
	r.fov = physics.SmoothDamp(r.fov, target, &r.fovVelocity, r.settings.FOVSmoothTime, dt)
}

// Euler returns the view pitch and yaw in degrees
func (r *Rig) Euler() (pitch, yaw float64) { return r.pitch, r.yaw }

// Orientation returns the view rotation
func (r *Rig) Orientation() mgl64.Quat { return physics.Euler(r.pitch, r.yaw, 0) }

func (r *Rig) Position() mgl64.Vec3 { return r.position }
func (r *Rig) FOV() float64         { return r.fov }
func (r *Rig) Offset() mgl64.Vec3   { return r.offset }
