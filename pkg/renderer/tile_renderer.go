package renderer

import (
	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It only reads the scene, so one instance is shared by every worker.
type TileRenderer struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
	samples       int
}

// NewTileRenderer creates a tile renderer for a surface of the given size
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height, samples int) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samples,
	}
}

// RenderTile fills the tile's pixel buffer and returns the number of camera
// rays traced. Image rows run top to bottom while the camera's t axis runs
// bottom to top.
func (tr *TileRenderer) RenderTile(tile *Tile, sampler core.Sampler) int {
	camera := tr.scene.Camera
	invWidth := 1.0 / float64(tr.width)
	invHeight := 1.0 / float64(tr.height)
	invSamples := 1.0 / float64(tr.samples)

	for ly := 0; ly < tile.Height; ly++ {
		y := tile.Y + ly
		for lx := 0; lx < tile.Width; lx++ {
			x := tile.X + lx

			accum := core.Color{}
			for i := 0; i < tr.samples; i++ {
				jitter := sampler.Get2D()
				s := (float64(x) + jitter.X) * invWidth
				t := (float64(tr.height-1-y) + jitter.Y) * invHeight

				ray := camera.GetRay(s, t, sampler)
				accum = accum.Add(tr.integrator.RayColor(ray, tr.scene, sampler))
			}

			tile.Set(lx, ly, accum.Multiply(invSamples).GammaCorrect())
		}
	}

	return tile.Width * tile.Height * tr.samples
}
