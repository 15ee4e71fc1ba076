// Package storage keeps report image blobs outside the database. The rest of
// the application only ever sees the key and public URL of an object.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"safety_reports/internal/config"
)

// Store puts and removes image objects.
type Store interface {
	// Put stores body under key and returns the public URL of the object.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewKey returns a unique object key like "reports/2025/01/<uuid>.png".
func NewKey(contentType string, now time.Time) string {
	ext := extensions[contentType]
	return path.Join("reports", now.UTC().Format("2006/01"), uuid.NewString()+ext)
}

// New builds the store selected by cfg.Driver.
func New(cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL), nil
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
