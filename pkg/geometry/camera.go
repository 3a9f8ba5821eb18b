package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height of the image plane
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the focus plane; 0 or less means |LookFrom-LookAt|
}

// DefaultCameraConfig looks down -Z from the origin with a 16:9 pinhole lens
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera maps normalized image-plane coordinates to world-space rays.
// It is immutable after construction and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	focusDistance   float64
	config          CameraConfig
}

// NewCamera creates a camera with depth of field from the configuration
func NewCamera(config CameraConfig) *Camera {
	from := config.LookFrom.ToMgl()
	at := config.LookAt.ToMgl()

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = from.Sub(at).Len()
	}

	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := viewportHeight * config.AspectRatio

	// w points backwards from the view direction, u right, v up
	w := from.Sub(at).Normalize()
	u := config.Up.ToMgl().Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Mul(focusDistance * viewportWidth)
	vertical := v.Mul(focusDistance * viewportHeight)
	lowerLeftCorner := from.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w.Mul(focusDistance))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: core.Vec3FromMgl(lowerLeftCorner),
		horizontal:      core.Vec3FromMgl(horizontal),
		vertical:        core.Vec3FromMgl(vertical),
		u:               core.Vec3FromMgl(u),
		v:               core.Vec3FromMgl(v),
		w:               core.Vec3FromMgl(w),
		lensRadius:      config.Aperture / 2,
		focusDistance:   focusDistance,
		config:          config,
	}
}

// GetRay generates a ray through image-plane coordinates (s, t), both in [0,1),
// where (0,0) is the lower-left corner. The origin is jittered across the lens
// aperture for depth of field.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// FocusDistance returns the resolved focus distance
func (c *Camera) FocusDistance() float64 {
	return c.focusDistance
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
