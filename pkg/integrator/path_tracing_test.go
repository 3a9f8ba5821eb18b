package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
	"github.com/df07/go-tile-raytracer/pkg/scene"
	"github.com/stretchr/testify/assert"
)

// constSampler returns the same value for every draw
type constSampler struct {
	value float64
}

func (s constSampler) Get1D() float64   { return s.value }
func (s constSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }

// createTestScene creates a scene holding a single sphere at (0,0,-1)
func createTestScene(mat *material.Material) *scene.Scene {
	s := scene.New(geometry.NewCamera(geometry.DefaultCameraConfig()))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, mat)
	return s
}

func TestBackground(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.SkyBlue},
		{"straight down", core.NewVec3(0, -1, 0), core.White},
		{"horizon", core.NewVec3(0, 0, 1), core.NewColor(0.75, 0.85, 1.0)},
		{"unnormalized", core.NewVec3(0, 5, 0), core.SkyBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Background(core.NewRay(core.Vec3{}, tt.direction))
			assert.True(t, got.Equals(tt.expected, 1e-12), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestPathTracer_MissReturnsBackground(t *testing.T) {
	s := createTestScene(material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	pt := NewPathTracer(50)

	// Aimed away from the sphere
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 1))
	got := pt.RayColor(ray, s, constSampler{0.5})

	assert.True(t, got.Equals(Background(ray), 1e-12))
}

func TestPathTracer_ZeroBudgetIsBlack(t *testing.T) {
	s := createTestScene(material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	pt := NewPathTracer(0)

	// Even an escaping ray gathers nothing without budget
	for _, dir := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)} {
		got := pt.RayColor(core.NewRay(core.Vec3{}, dir), s, constSampler{0.5})
		assert.Equal(t, core.Black, got)
	}
}

func TestPathTracer_MirrorBounce(t *testing.T) {
	albedo := core.NewColor(0.8, 0.6, 0.2)
	s := createTestScene(material.NewMetal(albedo, 0))
	pt := NewPathTracer(2)

	// Reflects straight back along +Z and escapes at the horizon
	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, constSampler{0.5})
	expected := core.NewColor(0.6, 0.51, 0.2)
	assert.True(t, got.Equals(expected, 1e-9), "expected %v, got %v", expected, got)
}

func TestPathTracer_BudgetExhausted(t *testing.T) {
	s := createTestScene(material.NewMetal(core.White, 0))

	// One bounce is spent hitting the mirror, leaving nothing to reach the sky
	got := NewPathTracer(1).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, constSampler{0.5})
	assert.Equal(t, core.Black, got)
}

func TestPathTracer_AbsorbedIsBlack(t *testing.T) {
	s := scene.New(geometry.NewCamera(geometry.DefaultCameraConfig()))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewMetal(core.White, 1.0))

	// Shallow ray; a 0.25 draw offsets the reflection by (-0.5,-0.5,-0.5), pushing it below the surface
	ray := core.NewRay(core.NewVec3(0, 0.2, 0), core.NewVec3(0, -0.2, -1))
	got := NewPathTracer(10).RayColor(ray, s, constSampler{0.25})
	assert.Equal(t, core.Black, got)
}

func TestPathTracer_DiffuseStaysFinite(t *testing.T) {
	s, err := scene.Lookup("default", 16.0/9.0)
	if err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracer(50)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		u := sampler.Get1D()
		v := sampler.Get1D()
		ray := s.Camera.GetRay(u, v, sampler)
		c := pt.RayColor(ray, s, sampler)

		assert.False(t, c.HasNaN())
		assert.False(t, math.IsInf(c.R+c.G+c.B, 0))
		assert.GreaterOrEqual(t, c.R, 0.0)
		assert.LessOrEqual(t, c.B, 1.0+1e-9)
	}
}
