package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Lookup for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier used on the command line and in requests
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Short description
}

// builder creates a scene for the requested image aspect ratio
type builder func(aspectRatio float64) *Scene

type registeredScene struct {
	info  SceneInfo
	build builder
}

// randomSceneSeed keeps the cover scene layout stable between runs
const randomSceneSeed = 2020

var registry = map[string]registeredScene{
	"default": {
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Diffuse, metal and glass spheres on a ground sphere"},
		build: func(aspect float64) *Scene { return NewDefaultScene(aspect) },
	},
	"basic": {
		info:  SceneInfo{ID: "basic", DisplayName: "Basic", Description: "A single diffuse sphere on the ground"},
		build: NewBasicScene,
	},
	"random": {
		info:  SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Field of small random spheres with three feature spheres"},
		build: func(aspect float64) *Scene { return NewRandomScene(aspect, randomSceneSeed) },
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "20x20 grid of metal spheres in graded colors"},
		build: func(aspect float64) *Scene { return NewSphereGridScene(aspect) },
	},
	"empty": {
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "No geometry, sky gradient only"},
		build: NewEmptyScene,
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of every built-in scene, sorted
func Names() []string {
	infos := ListScenes()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.ID
	}
	return names
}

// Lookup builds the named scene for an image with the given aspect ratio
func Lookup(name string, aspectRatio float64) (*Scene, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return r.build(aspectRatio), nil
}
