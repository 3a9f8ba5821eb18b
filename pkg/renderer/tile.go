package renderer

import (
	"image"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered.
// Its pixel buffer is owned by one worker until the tile is handed to the display.
type Tile struct {
	ID     int          // Unique tile identifier, row-major
	X, Y   int          // Top-left pixel of the tile on the surface
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []core.Color // Row-major, len = Width*Height
}

// NewTile creates a tile with an empty pixel buffer
func NewTile(id, x, y, width, height int) *Tile {
	return &Tile{
		ID:     id,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// Bounds returns the tile's pixel rectangle in surface coordinates
func (t *Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}

// At returns the pixel at tile-local coordinates
func (t *Tile) At(lx, ly int) core.Color {
	return t.Pixels[ly*t.Width+lx]
}

// Set stores the pixel at tile-local coordinates
func (t *Tile) Set(lx, ly int, c core.Color) {
	t.Pixels[ly*t.Width+lx] = c
}

// SplitSurface creates a row-major grid of tiles covering the entire surface.
// When a dimension is not a multiple of the tile size the last row or column
// holds smaller tiles, so every pixel belongs to exactly one tile.
func SplitSurface(width, height, tileWidth, tileHeight int) []*Tile {
	if width <= 0 || height <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil
	}

	// Ceiling division
	tilesX := (width + tileWidth - 1) / tileWidth
	tilesY := (height + tileHeight - 1) / tileHeight

	tiles := make([]*Tile, 0, tilesX*tilesY)
	tileID := 0
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileWidth
			y0 := tileY * tileHeight
			x1 := min(x0+tileWidth, width) // Don't exceed image bounds
			y1 := min(y0+tileHeight, height)

			tiles = append(tiles, NewTile(tileID, x0, y0, x1-x0, y1-y0))
			tileID++
		}
	}

	return tiles
}
