// Package uploads bridges locally produced article assets and the blob
// store. The gateway validates a local file before any network call, uploads
// it under a key derived from the owning article, and derives keys back out
// of public URLs for best-effort deletes.
package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JinTanba/aitimes/internal/config"
	"github.com/JinTanba/aitimes/internal/storage"
	"github.com/docker/go-units"
	"github.com/google/uuid"
)

// Gateway validates and uploads article assets to blob storage.
type Gateway struct {
	storage      storage.System
	logger       *slog.Logger
	maxImageSize int64
	maxVideoSize int64
}

// New creates an upload gateway backed by the given blob store.
func New(store storage.System, cfg *config.StorageConfig, logger *slog.Logger) *Gateway {
	return &Gateway{
		storage:      store,
		logger:       logger.With("system", "uploads"),
		maxImageSize: cfg.MaxImageSizeBytes(),
		maxVideoSize: cfg.MaxVideoSizeBytes(),
	}
}

// Validate checks that the local file exists, carries an allowed extension
// for the kind, and does not exceed the kind's size ceiling. It makes no
// remote calls.
func (g *Gateway) Validate(localPath string, kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAssetMissing, localPath)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	if _, ok := kind.ContentType(ext); !ok {
		return fmt.Errorf("%w: %s %s", ErrUnsupportedFormat, kind, ext)
	}

	limit := g.sizeLimit(kind)
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %s, limit %s",
			ErrAssetTooLarge,
			filepath.Base(localPath),
			units.HumanSize(float64(info.Size())),
			units.HumanSize(float64(limit)),
		)
	}

	return nil
}

// Upload reads the local file and stores it under
// {folder}/{articleID}/{random}{ext}, returning the public URL. Each call
// is a single atomic put; a failed upload leaves nothing remote behind.
func (g *Gateway) Upload(ctx context.Context, localPath, articleID string, kind Kind) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", kind, err)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	contentType, ok := kind.ContentType(ext)
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrUnsupportedFormat, kind, ext)
	}

	key := fmt.Sprintf("%s/%s/%s%s", kind.Folder(), articleID, uuid.NewString(), ext)

	url, err := g.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", kind, err)
	}

	g.logger.Info("asset uploaded", "kind", kind, "article_id", articleID, "key", key)
	return url, nil
}

// Delete removes the object behind a public URL. Deletion is advisory: a
// URL that does not match the store's public shape, or a store refusal, is
// logged and reported as false without raising.
func (g *Gateway) Delete(ctx context.Context, publicURL string) bool {
	key, ok := g.storage.KeyFromURL(publicURL)
	if !ok {
		g.logger.Warn("could not derive storage key from url", "url", publicURL)
		return false
	}

	if err := g.storage.Delete(ctx, key); err != nil {
		g.logger.Warn("asset delete failed", "key", key, "error", err)
		return false
	}

	return true
}

func (g *Gateway) sizeLimit(kind Kind) int64 {
	if kind == KindVideo {
		return g.maxVideoSize
	}
	return g.maxImageSize
}
