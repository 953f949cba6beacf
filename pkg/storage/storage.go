package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores finished renders under a slash-separated key
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// FileSink writes objects below a base directory on the local filesystem
type FileSink struct {
	BaseDir string
}

// NewFileSink creates a sink rooted at baseDir
func NewFileSink(baseDir string) *FileSink {
	return &FileSink{BaseDir: baseDir}
}

// Put writes data to BaseDir/key, creating parent directories as needed
func (fs *FileSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := fs.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Path returns the file a key is stored at. Keys may not escape BaseDir.
func (fs *FileSink) Path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(fs.BaseDir, clean), nil
}

// MultiSink writes every object to each of its sinks in order,
// stopping at the first failure
type MultiSink []Sink

func (ms MultiSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	for _, s := range ms {
		if err := s.Put(ctx, key, data, contentType); err != nil {
			return err
		}
	}
	return nil
}
