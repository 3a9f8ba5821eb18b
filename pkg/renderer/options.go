package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidOptions is returned when render options cannot produce an image
var ErrInvalidOptions = errors.New("invalid render options")

// Options configures a single render run
type Options struct {
	Samples    int   // Camera rays per pixel
	MaxScatter int   // Bounce budget per camera ray
	TileWidth  int   // Tile width in pixels
	TileHeight int   // Tile height in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; each tile derives its own stream from it
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Samples:    100,
		MaxScatter: 50,
		TileWidth:  64,
		TileHeight: 64,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Validate reports the first option that would make rendering impossible
func (o Options) Validate() error {
	switch {
	case o.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidOptions, o.Samples)
	case o.MaxScatter < 0:
		return fmt.Errorf("%w: max scatter must not be negative, got %d", ErrInvalidOptions, o.MaxScatter)
	case o.TileWidth <= 0 || o.TileHeight <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %dx%d", ErrInvalidOptions, o.TileWidth, o.TileHeight)
	case o.NumWorkers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.NumWorkers)
	}
	return nil
}

// workers resolves the pool size
func (o Options) workers() int {
	if o.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return o.NumWorkers
}
