package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(0, core.NopLogger{})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// parseSSE splits a recorded event stream into (type, data) pairs
func parseSSE(t *testing.T, body string) []SSEEvent {
	t.Helper()
	var events []SSEEvent
	var current SSEEvent

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			events = append(events, current)
			current = SSEEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func eventsOfType(events []SSEEvent, eventType string) []SSEEvent {
	var out []SSEEvent
	for _, e := range events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Scenes []scene.SceneInfo `json:"scenes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, scene.ListScenes(), body.Scenes)
}

func TestHandleRender_StreamsTiles(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=basic&width=20&height=10&samples=1&maxScatter=3&tile=8")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseSSE(t, rec.Body.String())
	require.NotEmpty(t, events)
	assert.Empty(t, eventsOfType(events, "error"))
	assert.NotEmpty(t, eventsOfType(events, "console"))

	// 20x10 in 8px tiles is a 3x2 grid with smaller edge tiles
	tiles := eventsOfType(events, "tile")
	require.Len(t, tiles, 6)

	seen := make(map[int]bool)
	pixels := 0
	for i, e := range tiles {
		var update TileUpdate
		require.NoError(t, json.Unmarshal([]byte(e.Data), &update))
		assert.Equal(t, i+1, update.TileNumber)
		assert.Equal(t, 6, update.TotalTiles)
		assert.False(t, seen[update.TileID])
		seen[update.TileID] = true
		pixels += update.Width * update.Height

		raw, err := base64.StdEncoding.DecodeString(update.ImageData)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, update.Width, img.Bounds().Dx())
		assert.Equal(t, update.Height, img.Bounds().Dy())
	}
	assert.Equal(t, 200, pixels)

	// Completion is the last event
	last := events[len(events)-1]
	require.Equal(t, "complete", last.Type)
	var complete CompleteUpdate
	require.NoError(t, json.Unmarshal([]byte(last.Data), &complete))
	assert.Equal(t, 6, complete.Tiles)
	assert.Equal(t, 200, complete.TotalPixels)
	assert.Equal(t, 200, complete.TotalSamples)
	assert.NotEmpty(t, complete.RenderID)
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"bad width", "/api/render?width=abc", "Invalid request"},
		{"samples out of range", "/api/render?samples=0", "Invalid request"},
		{"bad seed", "/api/render?seed=x", "Invalid request"},
		{"unknown scene", "/api/render?scene=cornell&width=4&height=4&samples=1", "unknown scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseSSE(t, get(t, newTestServer(), tt.target).Body.String())
			errs := eventsOfType(events, "error")
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Data, tt.message)
			assert.Empty(t, eventsOfType(events, "complete"))
		})
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(nil)
	require.NoError(t, err)
	assert.Equal(t, "default", req.Scene)
	assert.Equal(t, 400, req.Width)
	assert.Equal(t, 225, req.Height)
	assert.Equal(t, DefaultTileSize, req.TileSize)
	assert.Equal(t, int64(42), req.Seed)
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/inspect?scene=basic&width=16&height=8&x=8&y=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var hit InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hit))
	assert.True(t, hit.Hit)
	assert.Equal(t, "lambertian", hit.MaterialType)
	assert.Equal(t, "sphere", hit.GeometryType)
	assert.True(t, hit.FrontFace)
	assert.Greater(t, hit.Distance, 0.0)

	geometryProps, ok := hit.Properties["geometry"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.5, geometryProps["radius"], 1e-12)

	// Straight up at the sky
	rec = get(t, s, "/api/inspect?scene=basic&width=16&height=8&x=8&y=0")
	require.Equal(t, http.StatusOK, rec.Code)
	var miss InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &miss))
	assert.False(t, miss.Hit)
}

func TestHandleInspect_BadRequests(t *testing.T) {
	s := newTestServer()
	for _, target := range []string{
		"/api/inspect?x=1",
		"/api/inspect?x=a&y=1",
		"/api/inspect?width=10&height=10&x=10&y=0",
		"/api/inspect?scene=nope&x=0&y=0",
	} {
		rec := get(t, s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
