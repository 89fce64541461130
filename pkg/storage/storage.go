package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
)

// ErrObjectNotFound is returned by Open when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// Store persists generated report files under relative keys
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// New builds the Store selected by report.storage_driver
func New(ctx context.Context, cfg *config.ReportConfig, logger *zap.Logger) (Store, error) {
	switch cfg.StorageDriver {
	case "local":
		logger.Info("report storage: local", zap.String("dir", cfg.LocalDir))
		return NewLocal(cfg.LocalDir)
	case "gcs":
		logger.Info("report storage: gcs", zap.String("bucket", cfg.GCSBucket))
		return NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// cleanKey normalizes a relative key and rejects anything escaping the root
func cleanKey(key string) (string, error) {
	k := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if k == "" {
		return "", fmt.Errorf("empty storage key")
	}
	k = path.Clean(k)
	if path.IsAbs(k) || k == "." || k == ".." || strings.HasPrefix(k, "../") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return k, nil
}
