package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-bounce-raytracer/pkg/integrator"
)

// Config holds settings shared by the CLI and the web server.
// Zero Width, Height or MaxBounces means "use the scene's own value".
type Config struct {
	Scene       string
	Width       int
	Height      int
	MaxBounces  int
	Blend       string
	Workers     int
	TileSize    int
	Supersample int
	Gamma       float64
	OutputDir   string
	ScenesDir   string

	AcceptBehindOrigin bool

	ServerAddress string

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:         "default",
		Blend:         integrator.BlendInterpolate.String(),
		TileSize:      64,
		Supersample:   1,
		Gamma:         2.2,
		OutputDir:     "output",
		ScenesDir:     "scenes",
		ServerAddress: ":8080",
		S3Region:      "us-east-1",
	}
}

// Load reads configuration from the environment. envFiles are loaded first
// with godotenv; missing files are ignored and variables already present in
// the environment take precedence over file values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Default()
	var errs []error

	cfg.Scene = getEnv("RENDER_SCENE", cfg.Scene)
	cfg.Width = getInt("RENDER_WIDTH", cfg.Width, &errs)
	cfg.Height = getInt("RENDER_HEIGHT", cfg.Height, &errs)
	cfg.MaxBounces = getInt("RENDER_MAX_BOUNCES", cfg.MaxBounces, &errs)
	cfg.Blend = getEnv("RENDER_BLEND", cfg.Blend)
	cfg.Workers = getInt("RENDER_WORKERS", cfg.Workers, &errs)
	cfg.TileSize = getInt("RENDER_TILE_SIZE", cfg.TileSize, &errs)
	cfg.Supersample = getInt("RENDER_SUPERSAMPLE", cfg.Supersample, &errs)
	cfg.Gamma = getFloat("RENDER_GAMMA", cfg.Gamma, &errs)
	cfg.OutputDir = getEnv("RENDER_OUTPUT_DIR", cfg.OutputDir)
	cfg.ScenesDir = getEnv("RENDER_SCENES_DIR", cfg.ScenesDir)
	cfg.AcceptBehindOrigin = getBool("RENDER_ACCEPT_BEHIND", cfg.AcceptBehindOrigin, &errs)

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)

	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3Bucket = os.Getenv("S3_BUCKET")

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate reports settings no render can be started with
func (c Config) Validate() error {
	var errs []error

	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height))
	}
	if c.MaxBounces < 0 {
		errs = append(errs, fmt.Errorf("max bounces must not be negative, got %d", c.MaxBounces))
	}
	if _, err := integrator.ParseBlendMode(c.Blend); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.Supersample < 1 || c.Supersample > 8 {
		errs = append(errs, fmt.Errorf("supersample must be between 1 and 8, got %d", c.Supersample))
	}
	if c.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("gamma must be positive, got %g", c.Gamma))
	}
	if c.S3Bucket != "" && (c.S3AccessKey == "" || c.S3SecretKey == "") {
		errs = append(errs, fmt.Errorf("S3_BUCKET is set but S3 credentials are missing"))
	}

	return errors.Join(errs...)
}

// S3Enabled reports whether renders should be uploaded to object storage
func (c Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// getEnv returns the environment variable or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, value))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, value))
		return fallback
	}
	return f
}

func getBool(key string, fallback bool, errs *[]error) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, value))
		return fallback
	}
	return b
}
