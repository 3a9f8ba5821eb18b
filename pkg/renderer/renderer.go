package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/integrator"
	"github.com/df07/go-tile-raytracer/pkg/scene"
	"github.com/google/uuid"
)

var (
	// ErrNoScene is returned when Render is called without a scene
	ErrNoScene = errors.New("no scene to render")
	// ErrEmptySurface is returned when the display has no pixels
	ErrEmptySurface = errors.New("display has no pixels")
)

// Renderer splits the display into tiles, renders them on a worker pool and
// hands every finished tile to the display as it arrives
type Renderer struct {
	options    Options
	integrator integrator.Integrator
	logger     core.Logger
	onProgress func(Progress)
}

// New creates a renderer. A nil logger discards log output.
func New(options Options, integratorInst integrator.Integrator, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		options:    options,
		integrator: integratorInst,
		logger:     logger,
	}
}

// NewPathTracingRenderer creates a renderer using a path tracer limited to
// options.MaxScatter bounces
func NewPathTracingRenderer(options Options, logger core.Logger) *Renderer {
	return New(options, integrator.NewPathTracer(options.MaxScatter), logger)
}

// OnProgress registers a callback invoked after each tile is drawn.
// It runs on the goroutine that called Render.
func (r *Renderer) OnProgress(fn func(Progress)) {
	r.onProgress = fn
}

// Options returns the renderer configuration
func (r *Renderer) Options() Options {
	return r.options
}

// Render draws the scene onto display and returns once every tile has been
// delivered exactly once and the display has been flushed
func (r *Renderer) Render(s *scene.Scene, display Display) (RenderStats, error) {
	if err := r.options.Validate(); err != nil {
		return RenderStats{}, err
	}
	if s == nil || s.Camera == nil {
		return RenderStats{}, ErrNoScene
	}

	width, height := display.Width(), display.Height()
	if width <= 0 || height <= 0 {
		return RenderStats{}, fmt.Errorf("%w: %dx%d", ErrEmptySurface, width, height)
	}

	stats := RenderStats{RunID: uuid.NewString()}
	startTime := time.Now()

	tiles := SplitSurface(width, height, r.options.TileWidth, r.options.TileHeight)
	tileRenderer := NewTileRenderer(s, r.integrator, width, height, r.options.Samples)
	pool := NewWorkerPool(tileRenderer, r.options.workers(), len(tiles), r.options.Seed)

	r.logger.Printf("[%s] Rendering %dx%d: %d tiles, %d samples/pixel, max scatter %d, %d workers\n",
		stats.RunID, width, height, len(tiles), r.options.Samples, r.options.MaxScatter, pool.NumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.Submit(TileTask{Tile: tile})
	}
	go pool.Stop()

	// Results close only after every worker has exited
	delivered := make([]bool, len(tiles))
	for result := range pool.Results() {
		tile := result.Tile
		if delivered[tile.ID] {
			return stats, fmt.Errorf("tile %d delivered twice", tile.ID)
		}
		delivered[tile.ID] = true

		display.DrawTile(tile)

		stats.Tiles++
		stats.TotalPixels += tile.Width * tile.Height
		stats.TotalSamples += result.Samples

		r.logger.Printf("[%s] Rendered %d/%d tiles\n", stats.RunID, stats.Tiles, len(tiles))
		if r.onProgress != nil {
			r.onProgress(Progress{
				RunID:     stats.RunID,
				Tile:      tile,
				Completed: stats.Tiles,
				Total:     len(tiles),
			})
		}
	}

	if stats.Tiles != len(tiles) {
		return stats, fmt.Errorf("rendered %d of %d tiles", stats.Tiles, len(tiles))
	}

	if err := display.Flush(); err != nil {
		return stats, fmt.Errorf("flush display: %w", err)
	}

	stats.Elapsed = time.Since(startTime)
	r.logger.Printf("[%s] Render completed in %v (%.1f samples/pixel)\n",
		stats.RunID, stats.Elapsed, stats.AverageSamples())

	return stats, nil
}
