package renderer

// Display is the presentation surface a render writes into.
// DrawTile copies each tile pixel to (tile.X+lx, tile.Y+ly); Flush presents
// whatever has been drawn. Render calls DrawTile from a single goroutine.
type Display interface {
	Width() int
	Height() int
	DrawTile(tile *Tile)
	Flush() error
}
