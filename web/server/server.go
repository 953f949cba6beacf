package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-bounce-raytracer/pkg/config"
	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/integrator"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
	"github.com/df07/go-bounce-raytracer/pkg/storage"
)

// Request limits
const (
	minSize        = 16
	maxSize        = 2000
	maxBounceLimit = 1000
	maxSupersample = 4
)

// Server handles web requests for the bounce raytracer
type Server struct {
	config config.Config
	sink   storage.Sink // Optional; nil disables publishing
	echo   *echo.Echo
	logger core.Logger
}

// NewServer creates a web server. sink may be nil.
func NewServer(cfg config.Config, sink storage.Sink) *Server {
	s := &Server{
		config: cfg,
		sink:   sink,
		echo:   echo.New(),
		logger: log.Default(),
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string `json:"scene"`       // Scene id as listed by /api/scenes
	Width       int    `json:"width"`       // Image width
	Height      int    `json:"height"`      // Image height
	MaxBounces  int    `json:"maxBounces"`  // Hit queries per pixel
	Blend       string `json:"blend"`       // "interpolate" or "accumulate"
	Supersample int    `json:"supersample"` // Render scale factor
	Publish     bool   `json:"publish"`     // Store the result in the configured sink
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	HitQueries       int     `json:"hitQueries"`
	Bounces          int     `json:"bounces"`
	BackgroundPixels int     `json:"backgroundPixels"`
	MaxBouncesUsed   int     `json:"maxBouncesUsed"`
	AverageBounces   float64 `json:"averageBounces"`
	DurationMs       int64   `json:"durationMs"`
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${method} ${uri} ${status} ${latency_human}\n",
	}))
	e.Use(middleware.CORS())

	if _, err := os.Stat("static"); err == nil {
		e.Static("/", "static")
	}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/stream", s.handleRenderStream)
	e.GET("/api/inspect", s.handleInspect)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the listener fails
func (s *Server) Start() error {
	s.logger.Printf("Starting web server on %s", s.config.ServerAddress)
	if err := s.echo.Start(s.config.ServerAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the server
func (s *Server) Close() error {
	return s.echo.Close()
}

// jsonError writes {"error": message} with the given status
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// parseRenderRequest parses and validates query parameters. Size and bounce
// defaults come from the scene when the query leaves them out.
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = s.config.Scene
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	defaults := sceneObj.SamplingConfig
	if s.config.Width > 0 {
		defaults.Width = s.config.Width
	}
	if s.config.Height > 0 {
		defaults.Height = s.config.Height
	}
	if s.config.MaxBounces > 0 {
		defaults.MaxBounces = s.config.MaxBounces
	}

	if req.Width, err = parseIntParam(values, "width", defaults.Width, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "maxBounces", defaults.MaxBounces, 0, maxBounceLimit); err != nil {
		return nil, nil, err
	}
	if req.Supersample, err = parseIntParam(values, "supersample", max(1, s.config.Supersample), 1, maxSupersample); err != nil {
		return nil, nil, err
	}

	req.Blend = values.Get("blend")
	if req.Blend == "" {
		req.Blend = s.config.Blend
	}
	if _, err := integrator.ParseBlendMode(req.Blend); err != nil {
		return nil, nil, err
	}

	if v := values.Get("publish"); v != "" {
		if req.Publish, err = strconv.ParseBool(v); err != nil {
			return nil, nil, fmt.Errorf("invalid publish: %s", v)
		}
	}

	if s.config.AcceptBehindOrigin {
		sceneObj.AcceptBehindOrigin = true
	}
	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a scene by id. Only listed scenes are accepted so
// requests cannot name arbitrary files.
func (s *Server) createScene(id string) (*scene.Scene, error) {
	scenes, err := scene.ListScenes(s.config.ScenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return scene.Create(id, s.config.ScenesDir)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
}

// handleScenes lists the available scenes
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListScenes(s.config.ScenesDir)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = s.config.Scene
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sc := sceneObj.SamplingConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":      sc.Width,
			"height":     sc.Height,
			"maxBounces": sc.MaxBounces,
			"objects":    sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":       map[string]int{"min": minSize, "max": maxSize},
			"height":      map[string]int{"min": minSize, "max": maxSize},
			"maxBounces":  map[string]int{"min": 0, "max": maxBounceLimit},
			"supersample": map[string]int{"min": 1, "max": maxSupersample},
		},
		"blendModes": []string{integrator.BlendInterpolate.String(), integrator.BlendAccumulate.String()},
	})
}
