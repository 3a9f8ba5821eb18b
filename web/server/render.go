package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
	"github.com/df07/go-tile-raytracer/pkg/scene"
	"github.com/google/uuid"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	Samples    int   `json:"samples"`    // Samples per pixel
	MaxScatter int   `json:"maxScatter"` // Bounce budget per camera ray
	TileSize   int   `json:"tileSize"`   // Tile edge in pixels
	Seed       int64 `json:"seed"`       // Random seed
}

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	RenderID   string `json:"renderId"`
	TileID     int    `json:"tileId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles delivered so far, including this one
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate is sent once after the last tile
type CompleteUpdate struct {
	RenderID       string  `json:"renderId"`
	Tiles          int     `json:"tiles"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// streamDisplay draws into an in-memory surface and streams every tile to
// the client as it arrives
type streamDisplay struct {
	*renderer.ImageSurface
	ctx        context.Context
	events     chan<- SSEEvent
	renderID   string
	totalTiles int
	drawn      int
	logger     core.Logger
}

func newStreamDisplay(ctx context.Context, req *RenderRequest, renderID string, events chan<- SSEEvent, logger core.Logger) *streamDisplay {
	return &streamDisplay{
		ImageSurface: renderer.NewImageSurface(req.Width, req.Height),
		ctx:          ctx,
		events:       events,
		renderID:     renderID,
		totalTiles:   len(renderer.SplitSurface(req.Width, req.Height, req.TileSize, req.TileSize)),
		logger:       logger,
	}
}

// DrawTile implements renderer.Display
func (d *streamDisplay) DrawTile(tile *renderer.Tile) {
	d.ImageSurface.DrawTile(tile)
	d.drawn++

	tileData, err := imageToBase64PNG(tileImage(tile))
	if err != nil {
		d.logger.Printf("Error encoding tile %d: %v\n", tile.ID, err)
		return
	}

	data, err := json.Marshal(TileUpdate{
		RenderID:   d.renderID,
		TileID:     tile.ID,
		X:          tile.X,
		Y:          tile.Y,
		Width:      tile.Width,
		Height:     tile.Height,
		ImageData:  tileData,
		TileNumber: d.drawn,
		TotalTiles: d.totalTiles,
	})
	if err != nil {
		d.logger.Printf("Error marshaling tile update: %v\n", err)
		return
	}

	sendEvent(d.ctx, d.events, SSEEvent{Type: "tile", Data: string(data)})
}

// tileImage converts a tile's pixel buffer into a standalone image
func tileImage(tile *renderer.Tile) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tile.Width, tile.Height))
	for ly := 0; ly < tile.Height; ly++ {
		for lx := 0; lx < tile.Width; lx++ {
			img.Set(lx, ly, tile.At(lx, ly))
		}
	}
	return img
}

// handleRender renders a scene and streams each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it so nothing is written
	// after ServeHTTP returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)

	stats, err := s.render(ctx, req, renderID, webLogger, sseEventChan)

	// Drain console output before the final event
	close(consoleChan)
	<-consoleDone

	if err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		RenderID:       renderID,
		Tiles:          stats.Tiles,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples(),
		ElapsedMs:      stats.Elapsed.Milliseconds(),
	})
	if err != nil {
		s.logger.Printf("Error marshaling completion: %v\n", err)
		return
	}
	sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// render builds the requested scene and renders it into a streaming display
func (s *Server) render(ctx context.Context, req *RenderRequest, renderID string, logger core.Logger, events chan<- SSEEvent) (renderer.RenderStats, error) {
	sceneObj, err := scene.Lookup(req.Scene, req.aspectRatio())
	if err != nil {
		return renderer.RenderStats{}, err
	}

	options := renderer.Options{
		Samples:    req.Samples,
		MaxScatter: req.MaxScatter,
		TileWidth:  req.TileSize,
		TileHeight: req.TileSize,
		NumWorkers: 0, // Auto-detect
		Seed:       req.Seed,
	}

	logger.Printf("Rendering %s at %dx%d\n", req.Scene, req.Width, req.Height)
	display := newStreamDisplay(ctx, req, renderID, events, logger)
	return renderer.NewPathTracingRenderer(options, logger).Render(sceneObj, display)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards log lines until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Printf("Error marshaling console message: %v\n", err)
			continue
		}
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "console", Data: string(data)})
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	sceneReq, err := parseSceneParams(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: sceneReq}

	defaults := renderer.DefaultOptions()
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxScatter, err = parseIntParam(values, "maxScatter", defaults.MaxScatter, 0, 1000); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tile", DefaultTileSize, 1, 512); err != nil {
		return nil, err
	}

	req.Seed = defaults.Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var _ renderer.Display = (*streamDisplay)(nil)
