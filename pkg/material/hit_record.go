package material

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Face identifies which side of a surface a ray struck
type Face int

const (
	FrontFace Face = iota // ray arrived from outside the surface
	BackFace              // ray arrived from inside the surface
)

func (f Face) String() string {
	if f == BackFace {
		return "back"
	}
	return "front"
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, always opposing the incoming ray
	T        float64   // Parameter t along the ray
	Face     Face      // Whether the ray hit the front or back face
	Material *Material // Material of the hit object, shared and read-only
}

// SetFaceNormal orients the normal against the incoming ray and records the face.
// outwardNormal must be unit length and point away from the surface interior.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	if ray.Direction.Dot(outwardNormal) < 0 {
		h.Face = FrontFace
		h.Normal = outwardNormal
	} else {
		h.Face = BackFace
		h.Normal = outwardNormal.Negate()
	}
}
