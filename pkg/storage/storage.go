// Package storage provides read access to stored assets with local filesystem
// and Azure Blob Storage implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/groundtruth/pkg/lifecycle"
)

// Object is an open stored asset. The caller must close Body.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ModTime       time.Time
}

// System manages asset retrieval and lifecycle coordination.
type System interface {
	// Start registers a startup hook that verifies the backing store is reachable.
	Start(lc *lifecycle.Coordinator) error
	// Open returns the object stored at key. Returns ErrNotFound if it does not exist.
	Open(ctx context.Context, key string) (*Object, error)
}

// New creates the storage system selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendLocal:
		return newLocal(cfg, logger)
	case BackendAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for segment := range strings.SplitSeq(key, "/") {
		if segment == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
