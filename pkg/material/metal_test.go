package material

import (
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			assert.Equal(t, tt.expectedFuzz, metal.Fuzz())
			assert.Equal(t, KindMetal, metal.Kind())
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, ok := metal.Scatter(rayIn, hit, sampler)
	require.True(t, ok, "metal should scatter")

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	assert.True(t, actual.Equals(expected, 1e-10), "expected %v, got %v", expected, actual)
	assert.Equal(t, albedo, scatter.Attenuation)
}

func TestMetal_AbsorbsWhenReflectionPointsIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)

	// Grazing ray travelling parallel to the surface reflects to itself, dot == 0
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}

	_, ok := metal.Scatter(rayIn, hit, core.NewSeededSampler(1))
	assert.False(t, ok)
}

func TestMetal_FuzzyReflection_AttenuationNeverExceedsAlbedo(t *testing.T) {
	albedo := core.NewColor(0.8, 0.6, 0.2)
	metal := NewMetal(albedo, 1.0)
	sampler := core.NewSeededSampler(42)

	// Shallow incidence so the fuzz sphere reaches below the surface
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -0.2, -1))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}

	scattered, absorbed := 0, 0
	for i := 0; i < 2000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			absorbed++
			continue
		}
		scattered++
		assert.Greater(t, scatter.Scattered.Direction.Dot(hit.Normal), 0.0)
		assert.LessOrEqual(t, scatter.Attenuation.R, albedo.R)
		assert.LessOrEqual(t, scatter.Attenuation.G, albedo.G)
		assert.LessOrEqual(t, scatter.Attenuation.B, albedo.B)
	}

	assert.Positive(t, scattered)
	assert.Positive(t, absorbed, "fully fuzzy metal should sometimes scatter into the surface")
}
