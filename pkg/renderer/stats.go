package renderer

import "time"

// RenderStats contains statistics about a finished render
type RenderStats struct {
	RunID        string        // Identifier shared by every log line of the run
	Tiles        int           // Number of tiles rendered
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Elapsed      time.Duration // Wall time of the render
}

// AverageSamples returns the mean camera rays per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// Progress is reported after each tile reaches the display
type Progress struct {
	RunID     string
	Tile      *Tile
	Completed int // Tiles delivered so far, including this one
	Total     int
}
