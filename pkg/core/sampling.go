package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each worker or tile its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(sampler Sampler, lo, hi float64) Vec3 {
	span := hi - lo
	return Vec3{
		X: lo + span*sampler.Get1D(),
		Y: lo + span*sampler.Get1D(),
		Z: lo + span*sampler.Get1D(),
	}
}

// RandomUnitVector returns a direction uniformly distributed over the unit sphere.
// Uses the z/phi parametrization so no samples are rejected.
func RandomUnitVector(sampler Sampler) Vec3 {
	sample := sampler.Get2D()
	z := 2*sample.X - 1 // z ∈ [-1, 1)
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a point uniformly distributed inside the unit disk (z = 0).
// About 21% of candidates from the enclosing square are rejected.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		sample := sampler.Get2D()
		p := NewVec3(2*sample.X-1, 2*sample.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
