package scene

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is built up front and then shared read-only by every render worker.
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	entities     []geometry.Entity
}

// New creates an empty scene viewed through camera
func New(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera:       camera,
		CameraConfig: camera.Config(),
		entities:     make([]geometry.Entity, 0),
	}
}

// Add appends entities to the scene
func (s *Scene) Add(entities ...geometry.Entity) {
	s.entities = append(s.entities, entities...)
}

// AddSphere is shorthand for adding a sphere entity
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) {
	s.Add(geometry.NewSphereEntity(center, radius, mat))
}

// Clear removes every entity, keeping the camera
func (s *Scene) Clear() {
	s.entities = s.entities[:0]
}

// Entities returns the scene contents; callers must not modify the slice
func (s *Scene) Entities() []geometry.Entity {
	return s.entities
}

// Len returns the number of entities in the scene
func (s *Scene) Len() int {
	return len(s.entities)
}

// Hit finds the nearest intersection across all entities within (tMin, tMax)
// by a linear scan that narrows the interval after every hit.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for i := range s.entities {
		if hit, isHit := s.entities[i].Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
