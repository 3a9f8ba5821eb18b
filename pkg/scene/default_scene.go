package scene

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(aspectRatio float64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   aspectRatio,
		Aperture:      0.05, // Mild depth of field blur
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := New(geometry.NewCamera(cameraConfig))

	lambertianGreen := material.NewLambertian(core.NewColor(0.48, 0.48, 0.0))
	lambertianBlue := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewColor(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	// Ground is a huge sphere so the horizon stays curved but flat near the camera
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	// Hollow glass sphere with a blue sphere inside; the negative radius flips
	// the inner shell's normals so it reads as an air bubble
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}

// NewBasicScene is a single diffuse sphere resting on a large ground sphere
func NewBasicScene(aspectRatio float64) *Scene {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = aspectRatio

	s := New(geometry.NewCamera(config))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0)))
	return s
}

// NewEmptyScene has no entities; every ray shows the sky gradient
func NewEmptyScene(aspectRatio float64) *Scene {
	config := geometry.DefaultCameraConfig()
	config.AspectRatio = aspectRatio
	return New(geometry.NewCamera(config))
}
