package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/geometry"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/material"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties"`
}

// centerSampler always returns the middle of the sample domain, which puts
// lens samples at the lens center
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }

// InspectResult contains information about the entity hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Entity    *geometry.Entity
}

// inspectPixel casts a ray through the center of a pixel and reports the first entity hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(u, v, centerSampler{})

	hit, isHit := sceneObj.Hit(ray, integrator.Epsilon, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The scene returns only the hit record; find the entity that produced it
	entities := sceneObj.Entities()
	for i := range entities {
		if entityHit, ok := entities[i].Hit(ray, integrator.Epsilon, hit.T+integrator.Epsilon); ok && entityHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Entity: &entities[i]}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// extractMaterialInfo describes a material for the inspector panel
func extractMaterialInfo(mat *material.Material) (string, map[string]any) {
	properties := make(map[string]any)
	if mat == nil {
		return "unknown", properties
	}

	albedo := mat.Albedo().Clamp(0, 1)
	properties["albedo"] = [3]float64{albedo.R, albedo.G, albedo.B}
	properties["color"] = fmt.Sprintf("#%02x%02x%02x",
		int(albedo.R*255), int(albedo.G*255), int(albedo.B*255))

	switch mat.Kind() {
	case material.KindMetal:
		properties["fuzz"] = mat.Fuzz()
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex()
	}
	return mat.Kind().String(), properties
}

// extractGeometryInfo describes an entity for the inspector panel
func extractGeometryInfo(entity *geometry.Entity) (string, map[string]any) {
	properties := make(map[string]any)
	if entity == nil {
		return "unknown", properties
	}

	switch entity.Kind() {
	case geometry.EntitySphere:
		sphere := entity.Sphere()
		properties["center"] = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
		properties["radius"] = sphere.Radius
	}
	return entity.Kind().String(), properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	inspectReq, err := parseSceneParams(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := scene.Lookup(inspectReq.Scene, inspectReq.aspectRatio())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Entity)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.Face == material.FrontFace,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
