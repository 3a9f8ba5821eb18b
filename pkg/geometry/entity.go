package geometry

import (
	"fmt"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// EntityKind enumerates the primitive shapes a scene can hold
type EntityKind int

const (
	EntitySphere EntityKind = iota
)

func (k EntityKind) String() string {
	switch k {
	case EntitySphere:
		return "sphere"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Entity is a hittable primitive. It is a tagged union over EntityKind so that
// intersection dispatch is a single switch with no interface indirection.
type Entity struct {
	kind   EntityKind
	sphere Sphere
}

// NewSphereEntity wraps a sphere as a scene entity
func NewSphereEntity(center core.Vec3, radius float64, mat *material.Material) Entity {
	return Entity{kind: EntitySphere, sphere: NewSphere(center, radius, mat)}
}

// Kind returns the shape of the entity
func (e Entity) Kind() EntityKind { return e.kind }

// Sphere returns the sphere parameters; only meaningful for EntitySphere
func (e Entity) Sphere() Sphere { return e.sphere }

// Material returns the material shared by this entity
func (e Entity) Material() *material.Material {
	switch e.kind {
	case EntitySphere:
		return e.sphere.Material
	default:
		return nil
	}
}

// Hit tests the ray against the entity within (tMin, tMax)
func (e Entity) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	switch e.kind {
	case EntitySphere:
		return e.sphere.Hit(ray, tMin, tMax)
	default:
		return nil, false
	}
}
