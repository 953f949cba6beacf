package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-bounce-raytracer/pkg/config"
	"github.com/df07/go-bounce-raytracer/pkg/integrator"
	"github.com/df07/go-bounce-raytracer/pkg/renderer"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
	"github.com/df07/go-bounce-raytracer/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags applies command line flags on top of cfg
func parseFlags(cfg config.Config, args []string, out io.Writer) (config.Config, bool, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene: built-in name, json:<name> or path to a .json file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width (0 = scene default)")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height (0 = scene default)")
	fs.IntVar(&cfg.MaxBounces, "max-bounces", cfg.MaxBounces, "Hit queries per pixel (0 = scene default)")
	fs.StringVar(&cfg.Blend, "blend", cfg.Blend, "Bounce blending: interpolate or accumulate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker goroutines (0 = one per CPU)")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Tile edge in pixels")
	fs.IntVar(&cfg.Supersample, "supersample", cfg.Supersample, "Render at N times the size and downscale")
	fs.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Display gamma")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory searched for json:<name> scenes")
	fs.BoolVar(&cfg.AcceptBehindOrigin, "accept-behind", cfg.AcceptBehindOrigin, "Keep intersections behind the ray origin")
	list := fs.Bool("list", false, "List available scenes and exit")

	fs.Usage = func() {
		fmt.Fprintln(out, "Bounce Raytracer")
		fmt.Fprintln(out, "Usage: raytracer [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Settings may also come from RENDER_* and S3_* environment variables or a .env file.")
		fmt.Fprintln(out, "Output will be saved to <output>/<scene>/render_<timestamp>.png")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}
	return cfg, *list, nil
}

// outputName returns the directory name renders of a scene are stored under
func outputName(sceneName string) string {
	name := strings.TrimPrefix(sceneName, "json:")
	name = strings.TrimSuffix(filepath.Base(name), ".json")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "scene"
	}
	return name
}

// newSink writes to the output directory and, when configured, to S3
func newSink(cfg config.Config) (storage.Sink, error) {
	sinks := storage.MultiSink{storage.NewFileSink(cfg.OutputDir)}
	if cfg.S3Enabled() {
		s3Sink, err := storage.NewS3Sink(storage.S3Config{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
		}, renderer.NewDefaultLogger())
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}
	return sinks, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	cfg, list, err := parseFlags(cfg, args, out)
	if err != nil {
		return err
	}

	if list {
		scenes, err := scene.ListScenes(cfg.ScenesDir)
		if err != nil {
			return err
		}
		for _, info := range scenes {
			fmt.Fprintf(out, "  %-20s %s\n", info.ID, info.Description)
		}
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintln(out, "Starting Bounce Raytracer...")

	selectedScene, err := scene.Create(cfg.Scene, cfg.ScenesDir)
	if err != nil {
		return err
	}
	if cfg.AcceptBehindOrigin {
		selectedScene.AcceptBehindOrigin = true
	}
	fmt.Fprintf(out, "Using %s scene (%d objects)...\n", cfg.Scene, selectedScene.GetPrimitiveCount())

	blend, _ := integrator.ParseBlendMode(cfg.Blend) // checked by Validate
	renderConfig := renderer.DefaultConfig(selectedScene)
	if cfg.Width > 0 {
		renderConfig.Width = cfg.Width
	}
	if cfg.Height > 0 {
		renderConfig.Height = cfg.Height
	}
	if cfg.MaxBounces > 0 {
		renderConfig.MaxBounces = cfg.MaxBounces
	}
	renderConfig.Blend = blend
	renderConfig.NumWorkers = cfg.Workers
	renderConfig.TileSize = cfg.TileSize
	renderConfig.Supersample = cfg.Supersample
	renderConfig.Gamma = cfg.Gamma

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(selectedScene, renderConfig, renderer.NewDefaultLogger())
	img, stats, err := raytracer.Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(out, "Render completed in %v\n", stats.Duration)
	fmt.Fprintf(out, "Bounces per pixel: %.2f (max %d), background pixels: %d\n",
		stats.AverageBounces, stats.MaxBouncesUsed, stats.BackgroundPixels)

	var buf bytes.Buffer
	if err := renderer.EncodePNG(&buf, img); err != nil {
		return err
	}

	key := fmt.Sprintf("%s/render_%s.png", outputName(cfg.Scene), time.Now().Format("20060102_150405"))
	if err := sink.Put(ctx, key, buf.Bytes(), "image/png"); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	fmt.Fprintf(out, "Render saved as %s\n", filepath.Join(cfg.OutputDir, filepath.FromSlash(key)))
	return nil
}
