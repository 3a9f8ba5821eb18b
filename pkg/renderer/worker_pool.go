package renderer

import (
	"sync"

	"github.com/df07/go-tile-raytracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
}

// TileResult carries a finished tile back to the collecting goroutine
type TileResult struct {
	Tile    *Tile
	Samples int // Camera rays traced for the tile
	Worker  int // ID of the worker that rendered it
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	seed         int64
	taskQueue    <-chan TileTask
	resultQueue  chan<- TileResult
}

// NewWorkerPool creates numWorkers workers sharing one tile renderer.
// queueSize should be the number of tiles so submission never blocks.
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, queueSize int, seed int64) *WorkerPool {
	numWorkers = max(1, numWorkers)
	queueSize = max(1, queueSize)

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			tileRenderer: tileRenderer,
			seed:         seed,
			taskQueue:    wp.taskQueue,
			resultQueue:  wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Submit queues a tile for rendering
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Stop closes the task queue, waits for in-flight tiles and then closes the
// result channel. Every submitted task produces exactly one result first.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// Results returns the channel completed tiles arrive on, in completion order
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Seed per tile so the image does not depend on which worker got the tile
		sampler := core.NewSeededSampler(w.seed + int64(task.Tile.ID))
		samples := w.tileRenderer.RenderTile(task.Tile, sampler)

		w.resultQueue <- TileResult{
			Tile:    task.Tile,
			Samples: samples,
			Worker:  w.ID,
		}
	}
}
