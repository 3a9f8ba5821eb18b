package integrator

import (
	"math"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// Epsilon is the minimum hit distance; it keeps scattered rays from
// re-intersecting the surface they just left
const Epsilon = 0.001

// PathTracer implements unidirectional path tracing with a fixed bounce budget
type PathTracer struct {
	MaxScatter int
}

// NewPathTracer creates a path tracer that follows at most maxScatter bounces
func NewPathTracer(maxScatter int) *PathTracer {
	return &PathTracer{MaxScatter: maxScatter}
}

// RayColor follows ray through the scene, multiplying the throughput by each
// surface's attenuation until the path escapes to the sky, is absorbed, or
// runs out of bounces.
func (pt *PathTracer) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Color {
	throughput := core.White

	for depth := pt.MaxScatter; depth > 0; depth-- {
		hit, isHit := s.Hit(ray, Epsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyColor(Background(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Black
		}

		throughput = throughput.MultiplyColor(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Budget exhausted
	return core.Black
}

// Background is the sky gradient seen by rays that escape the scene:
// white at the horizon blending to sky blue straight up.
func Background(ray core.Ray) core.Color {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return core.White.Multiply(1.0 - t).Add(core.SkyBlue.Multiply(t))
}
