package material

import (
	"math"
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.3, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), Face: FrontFace}

	for i := 0; i < 100; i++ {
		scatter, ok := glass.Scatter(ray, hit, sampler)
		require.True(t, ok, "dielectric should always scatter")
		assert.Equal(t, core.White, scatter.Attenuation)
	}
}

func TestDielectric_TotalInternalReflectionIsDeterministic(t *testing.T) {
	glass := NewDielectric(1.5)

	// Ray travelling inside the glass at a shallow angle to the surface
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
		Face:   BackFace,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	require.True(t, CannotRefract(sinTheta, 1.5), "test setup should trigger total internal reflection")

	expected := Reflect(rayDirection, hit.Normal)
	for _, draw := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
		sampler := &constSampler{value: draw}
		scatter, ok := glass.Scatter(ray, hit, sampler)
		require.True(t, ok)
		assert.True(t, scatter.Scattered.Direction.Equals(expected, 1e-12),
			"draw %v: expected reflection %v, got %v", draw, expected, scatter.Scattered.Direction)
		assert.Zero(t, sampler.calls, "total internal reflection must not consume a random draw")
	}
}

func TestDielectric_RefractsAtNormalIncidenceWithHighDraw(t *testing.T) {
	glass := NewDielectric(1.5)

	// Straight down onto the surface: Schlick reflectance is R0 = 0.04
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), Face: FrontFace}

	scatter, ok := glass.Scatter(ray, hit, &constSampler{value: 0.9})
	require.True(t, ok)
	assert.True(t, scatter.Scattered.Direction.Equals(core.NewVec3(0, -1, 0), 1e-12),
		"expected straight-through refraction, got %v", scatter.Scattered.Direction)

	scatter, ok = glass.Scatter(ray, hit, &constSampler{value: 0.01})
	require.True(t, ok)
	assert.True(t, scatter.Scattered.Direction.Equals(core.NewVec3(0, 1, 0), 1e-12),
		"expected Fresnel reflection for a low draw, got %v", scatter.Scattered.Direction)
}

func TestDielectric_SnellsLaw(t *testing.T) {
	ratio := 1.0 / 1.5
	incoming := core.NewVec3(1, -1, 0).Normalize() // 45 degrees
	normal := core.NewVec3(0, 1, 0)

	refracted := Refract(incoming, normal, ratio)
	assert.InDelta(t, 1.0, refracted.Length(), 1e-12)

	sinIn := math.Sqrt(0.5)
	sinOut := refracted.X / refracted.Length()
	assert.InDelta(t, sinIn*ratio, sinOut, 1e-12)
	assert.Negative(t, refracted.Y)
}

func TestReflectanceFunction(t *testing.T) {
	// Normal incidence, air to glass: R0 = ((1-n)/(1+n))^2 = 0.04
	r0 := Reflectance(1.0, 1.0/1.5)
	assert.InDelta(t, 0.04, r0, 1e-12)

	// Grazing incidence approaches total reflection
	r90 := Reflectance(0.0, 1.0/1.5)
	assert.InDelta(t, 1.0, r90, 1e-12)

	r45 := Reflectance(math.Sqrt(0.5), 1.0/1.5)
	assert.Greater(t, r45, r0)
	assert.Less(t, r45, r90)
}
