package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bounce-raytracer/pkg/config"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, list, err := parseFlags(config.Default(), []string{
		"-scene", "mirrors", "-width", "120", "-max-bounces", "7", "-blend", "accumulate", "-accept-behind",
	}, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if list {
		t.Error("list should be off")
	}
	if cfg.Scene != "mirrors" || cfg.Width != 120 || cfg.MaxBounces != 7 || cfg.Blend != "accumulate" || !cfg.AcceptBehindOrigin {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	// Untouched settings keep their config values
	if cfg.Height != 0 || cfg.Gamma != 2.2 {
		t.Errorf("Unexpected defaults: height=%d gamma=%f", cfg.Height, cfg.Gamma)
	}
}

func TestParseFlags_Help(t *testing.T) {
	var out bytes.Buffer
	_, _, err := parseFlags(config.Default(), []string{"-help"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "Bounce Raytracer") {
		t.Errorf("Expected usage text, got %q", out.String())
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		scene    string
		expected string
	}{
		{"default", "default"},
		{"json:facing-mirrors", "facing-mirrors"},
		{"scenes/custom.json", "custom"},
		{"", "scene"},
	}

	for _, tt := range tests {
		if got := outputName(tt.scene); got != tt.expected {
			t.Errorf("outputName(%q) = %q, expected %q", tt.scene, got, tt.expected)
		}
	}
}

func TestRun_WritesRender(t *testing.T) {
	outputDir := t.TempDir()
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-scene", "default", "-width", "24", "-height", "24", "-max-bounces", "3", "-output", outputDir,
	}, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(outputDir, "default", "render_*.png"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected one render in %s, found %v", outputDir, matches)
	}
	if !strings.Contains(out.String(), "Render saved as") {
		t.Errorf("Expected save message, got %q", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent"}},
		{"missing json file", []string{"-scene", "scenes/nonexistent.json"}},
		{"bad blend", []string{"-scene", "empty", "-blend", "multiply"}},
		{"bad flag", []string{"-frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-output", t.TempDir())
			if err := run(context.Background(), args, &bytes.Buffer{}); err == nil {
				t.Error("Expected error")
			}
		})
	}

	err := run(context.Background(), []string{"-scene", "nonexistent", "-output", t.TempDir()}, &bytes.Buffer{})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-list", "-scenes-dir", t.TempDir()}, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, id := range []string{"default", "mirrors", "empty"} {
		if !strings.Contains(out.String(), id) {
			t.Errorf("Expected %q in listing %q", id, out.String())
		}
	}
}
