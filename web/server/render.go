package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/integrator"
	"github.com/df07/go-bounce-raytracer/pkg/renderer"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`     // Left edge in output pixels
	TileY      int    `json:"tileY"`     // Top edge in output pixels
	ImageData  string `json:"imageData"` // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	Stats Stats  `json:"stats"`
	Key   string `json:"key,omitempty"` // Storage key when published
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// newRaytracer configures a raytracer for a parsed request
func (s *Server) newRaytracer(req *RenderRequest, sceneObj *scene.Scene, logger core.Logger, tileImages bool) *renderer.Raytracer {
	blend, _ := integrator.ParseBlendMode(req.Blend) // validated by parseRenderRequest

	config := renderer.DefaultConfig(sceneObj)
	config.Width = req.Width
	config.Height = req.Height
	config.MaxBounces = req.MaxBounces
	config.Blend = blend
	config.Supersample = req.Supersample
	config.NumWorkers = s.config.Workers
	config.Gamma = s.config.Gamma
	if s.config.TileSize > 0 {
		config.TileSize = s.config.TileSize
	}
	config.TileImages = tileImages && req.Supersample == 1

	return renderer.NewRaytracer(sceneObj, config, logger)
}

// handleRender renders a scene and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, sceneObj, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, statusFor(err), fmt.Sprintf("Invalid request: %v", err))
	}
	if req.Publish && s.sink == nil {
		return jsonError(c, http.StatusBadRequest, "Publishing is not configured")
	}

	ctx := c.Request().Context()
	img, stats, err := s.newRaytracer(req, sceneObj, s.logger, false).Render(ctx, nil)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
	}

	data, err := encodePNG(img)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	h := c.Response().Header()
	h.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	h.Set("X-Render-Bounces", strconv.Itoa(stats.Bounces))
	h.Set("X-Render-Hit-Queries", strconv.Itoa(stats.HitQueries))

	if req.Publish {
		key, err := s.publish(ctx, req.Scene, data)
		if err != nil {
			return jsonError(c, http.StatusBadGateway, err.Error())
		}
		h.Set("X-Render-Key", key)
	}

	return c.Blob(http.StatusOK, "image/png", data)
}

// handleRenderStream renders with real-time tile streaming via SSE
func (s *Server) handleRenderStream(c echo.Context) error {
	req, sceneObj, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, statusFor(err), fmt.Sprintf("Invalid request: %v", err))
	}
	if req.Publish && s.sink == nil {
		return jsonError(c, http.StatusBadRequest, "Publishing is not configured")
	}

	w := c.Response()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, events)
		close(writerDone)
	}()

	// Console messages are forwarded by their own goroutine so the logger never blocks
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	forwardDone := make(chan struct{})
	go func() {
		for msg := range consoleChan {
			sendEvent(ctx, events, "console", msg)
		}
		close(forwardDone)
	}()

	raytracer := s.newRaytracer(req, sceneObj, NewWebLogger(renderID, consoleChan), true)
	scale := req.Supersample
	img, stats, renderErr := raytracer.Render(ctx, func(result renderer.TileCompletionResult) {
		update := TileUpdate{
			TileX:      result.Bounds.Min.X / scale,
			TileY:      result.Bounds.Min.Y / scale,
			TileNumber: result.TileNumber,
			TotalTiles: result.TotalTiles,
		}
		if result.Image != nil {
			if data, err := encodePNG(result.Image); err == nil {
				update.ImageData = base64.StdEncoding.EncodeToString(data)
			}
		}
		sendEvent(ctx, events, "tile", update)
	})

	close(consoleChan)
	<-forwardDone

	if renderErr != nil {
		sendEvent(ctx, events, "error", map[string]string{"error": fmt.Sprintf("Render error: %v", renderErr)})
	} else {
		complete := CompleteUpdate{Stats: toStats(stats)}
		if req.Publish {
			if data, err := encodePNG(img); err != nil {
				sendEvent(ctx, events, "error", map[string]string{"error": err.Error()})
			} else if key, err := s.publish(ctx, req.Scene, data); err != nil {
				sendEvent(ctx, events, "error", map[string]string{"error": err.Error()})
			} else {
				complete.Key = key
			}
		}
		sendEvent(ctx, events, "complete", complete)
	}

	close(events)
	<-writerDone
	return nil
}

// sendEvent marshals payload and queues it unless the client has gone away
func sendEvent(ctx context.Context, events chan<- SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case events <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// writeSSEEvents writes all SSE events from a single goroutine. After the
// client disconnects remaining events are drained and dropped.
func (s *Server) writeSSEEvents(ctx context.Context, w *echo.Response, events <-chan SSEEvent) {
	for event := range events {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		w.Flush()
	}
}

// publish stores a finished render and returns its key
func (s *Server) publish(ctx context.Context, sceneName string, data []byte) (string, error) {
	key := renderKey(sceneName, time.Now())
	if err := s.sink.Put(ctx, key, data, "image/png"); err != nil {
		return "", fmt.Errorf("failed to publish render: %w", err)
	}
	return key, nil
}

// renderKey names a render as <scene>/render_<timestamp>.png
func renderKey(sceneName string, t time.Time) string {
	return fmt.Sprintf("%s/render_%s.png", sanitizeSceneName(sceneName), t.Format("20060102_150405"))
}

// sanitizeSceneName makes a scene id safe for use as a path segment
func sanitizeSceneName(name string) string {
	out := []byte(name)
	for i, b := range out {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '-', b == '_':
		default:
			out[i] = '_'
		}
	}
	if len(out) == 0 {
		return "scene"
	}
	return string(out)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      rs.TotalPixels,
		HitQueries:       rs.HitQueries,
		Bounces:          rs.Bounces,
		BackgroundPixels: rs.BackgroundPixels,
		MaxBouncesUsed:   rs.MaxBouncesUsed,
		AverageBounces:   rs.AverageBounces,
		DurationMs:       rs.Duration.Milliseconds(),
	}
}

// statusFor maps request errors to HTTP status codes
func statusFor(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
