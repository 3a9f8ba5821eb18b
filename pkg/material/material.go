package material

import (
	"fmt"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Kind enumerates the closed set of material variants
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material describes how a surface scatters light. It is a tagged union over
// Kind; only the parameters relevant to the kind are meaningful.
// Materials are immutable once built and are shared by pointer between
// entities and render workers.
type Material struct {
	kind   Kind
	albedo core.Color // lambertian, metal
	fuzz   float64    // metal, in [0,1]
	ior    float64    // dielectric index of refraction
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The outgoing ray
	Attenuation core.Color // Per-channel fraction of light carried by the outgoing ray
}

// Kind returns the material variant
func (m *Material) Kind() Kind { return m.kind }

// Albedo returns the surface color for lambertian and metal materials
func (m *Material) Albedo() core.Color { return m.albedo }

// Fuzz returns the metal roughness in [0,1]
func (m *Material) Fuzz() float64 { return m.fuzz }

// RefractiveIndex returns the dielectric index of refraction
func (m *Material) RefractiveIndex() float64 { return m.ior }

// Scatter computes the outgoing ray for rayIn hitting the surface described by hit.
// It returns false when the material absorbs the ray.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

func (m *Material) String() string {
	switch m.kind {
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%.2f,%.2f,%.2f fuzz=%.2f)", m.albedo.R, m.albedo.G, m.albedo.B, m.fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric(ior=%.2f)", m.ior)
	default:
		return fmt.Sprintf("%s(albedo=%.2f,%.2f,%.2f)", m.kind, m.albedo.R, m.albedo.G, m.albedo.B)
	}
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
