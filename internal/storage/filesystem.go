package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/google/uuid"
)

// filesystem implements System using the local filesystem. Uploaded files
// are stored flat under the base path with a UUID-prefixed name so that
// repeated uploads of the same filename never collide.
type filesystem struct {
	basePath string
	logger   *slog.Logger
}

// New creates a filesystem upload sink rooted at the configured base path.
// The directory is created if it does not exist.
func New(cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &filesystem{
		basePath: absPath,
		logger:   logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Store(ctx context.Context, filename string, data []byte) (string, error) {
	name := uploadName(filename)

	path, err := f.fullPath(name)
	if err != nil {
		return "", err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	f.logger.Info("file stored", "name", name, "size", len(data))
	return name, nil
}

func (f *filesystem) Delete(ctx context.Context, name string) error {
	path, err := f.fullPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

func (f *filesystem) Exists(ctx context.Context, name string) (bool, error) {
	path, err := f.fullPath(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}

	return true, nil
}

func (f *filesystem) BasePath() string {
	return f.basePath
}

func (f *filesystem) fullPath(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidName
	}

	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidName
	}

	return filepath.Join(f.basePath, cleaned), nil
}

// uploadName builds a unique storage name from the original filename.
func uploadName(filename string) string {
	return uuid.New().String() + "_" + sanitizeFilename(filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
