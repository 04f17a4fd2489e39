// pkg/physics/collision.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Sphere represents a spherical trigger or collision volume
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Overlaps checks if two spheres intersect. Touching spheres do not overlap.
func (s Sphere) Overlaps(other Sphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}
