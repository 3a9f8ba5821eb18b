package material

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Color) *Material {
	return &Material{kind: KindLambertian, albedo: albedo}
}

// scatterLambertian approximates a cosine-weighted bounce by offsetting the
// normal with a random unit vector. Lambertian surfaces always scatter.
func (m *Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.albedo,
	}, true
}
