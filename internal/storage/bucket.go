package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/JinTanba/aitimes/internal/config"
)

// bucket implements System against a bucket-style object store exposing
// the storage/v1 HTTP API. Objects are written with an authenticated
// upsert and served through the bucket's public URL prefix.
type bucket struct {
	endpoint string
	name     string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// New creates a bucket storage client from configuration.
func New(cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket required")
	}

	return &bucket{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		name:     cfg.Bucket,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: 5 * time.Minute},
		logger:   logger.With("system", "storage"),
	}, nil
}

func (b *bucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", b.endpoint, b.name, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: %s", ErrUploadRejected, responseDetail(resp))
	}

	b.logger.Debug("object uploaded", "key", key, "bytes", len(data))
	return b.PublicURL(key), nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", b.endpoint, b.name, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: %s", ErrDeleteRejected, responseDetail(resp))
	}

	b.logger.Debug("object deleted", "key", key)
	return nil
}

func (b *bucket) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", b.endpoint, b.name, key)
}

func (b *bucket) KeyFromURL(publicURL string) (string, bool) {
	marker := fmt.Sprintf("/storage/v1/object/public/%s/", b.name)
	_, key, found := strings.Cut(publicURL, marker)
	if !found || key == "" {
		return "", false
	}
	return key, true
}

func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(key)
	if strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}

func responseDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, detail)
}
