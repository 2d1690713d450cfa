package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"

	"github.com/JaimeStill/groundtruth/pkg/lifecycle"
)

type local struct {
	baseDir string
	logger  *slog.Logger
}

func newLocal(cfg *Config, logger *slog.Logger) (System, error) {
	return &local{
		baseDir: cfg.BaseDir,
		logger:  logger.With("system", "storage", "backend", BackendLocal),
	}, nil
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system")

	lc.OnStartup("storage", func() error {
		info, err := os.Stat(l.baseDir)
		if err == nil && !info.IsDir() {
			err = fmt.Errorf("%s is not a directory", l.baseDir)
		}
		if err != nil {
			l.logger.Error("storage base directory unavailable", "base_dir", l.baseDir, "error", err)
			return err
		}
		l.logger.Info("storage base directory ready", "base_dir", l.baseDir)
		return nil
	})

	return nil
}

func (l *local) Open(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}
	defer root.Close()

	f, err := root.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open asset %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat asset %s: %w", key, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Body:          f,
		ContentType:   contentType,
		ContentLength: info.Size(),
		ModTime:       info.ModTime(),
	}, nil
}
