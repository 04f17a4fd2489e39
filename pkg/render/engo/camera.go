// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/camera"
)

// PixelsPerMeter scales world units to screen pixels
const PixelsPerMeter = 10

// Project maps a world position to the side view: forward distance runs right,
// altitude runs up.
func Project(p mgl64.Vec3) engo.Point {
	return engo.Point{
		X: float32(p.Z() * PixelsPerMeter),
		Y: float32(-p.Y() * PixelsPerMeter),
	}
}

// Zoom converts the rig's field of view into an engo zoom level. A wider view zooms out.
func Zoom(fov, baseFOV float64) float32 {
	if fov <= 0 || baseFOV <= 0 {
		return 1
	}
	return float32(fov / baseFOV)
}

// CameraPriority runs the engo camera after the simulation step
const CameraPriority = -10

// CameraSystem points the engo camera at the camera rig
type CameraSystem struct {
	rig     func() *camera.Rig
	baseFOV float64
}

// NewCameraSystem creates a camera system following rig
func NewCameraSystem(rig func() *camera.Rig, baseFOV float64) *CameraSystem {
	return &CameraSystem{rig: rig, baseFOV: baseFOV}
}

// Priority satisfies ecs.Prioritizer
func (cs *CameraSystem) Priority() int { return CameraPriority }

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update moves and zooms the engo camera
func (cs *CameraSystem) Update(dt float32) {
	r := cs.rig()
	if r == nil {
		return
	}
	p := Project(r.Position())
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: p.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: p.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: Zoom(r.FOV(), cs.baseFOV)})
}
