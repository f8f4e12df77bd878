package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// Environment variable overrides for the blob storage section.
// The names match the credentials the original deployment already uses.
const (
	EnvStorageEndpoint     = "SUPABASE_URL"
	EnvStorageAPIKey       = "SUPABASE_KEY"
	EnvStorageBucket       = "SUPABASE_BUCKET_NAME"
	EnvStorageMaxImageSize = "STORAGE_MAX_IMAGE_SIZE"
	EnvStorageMaxVideoSize = "STORAGE_MAX_VIDEO_SIZE"
)

// StorageConfig contains bucket-store client configuration.
type StorageConfig struct {
	// Endpoint is the base URL of the storage service, without trailing slash.
	Endpoint string `toml:"endpoint"`
	// Bucket is the storage bucket holding all article assets.
	Bucket string `toml:"bucket"`
	// APIKey authenticates uploads and deletes. Reads of public URLs need no key.
	APIKey string `toml:"api_key"`

	MaxImageSize string `toml:"max_image_size"`
	MaxVideoSize string `toml:"max_video_size"`

	maxImageSizeVal int64
	maxVideoSizeVal int64
}

// MaxImageSizeBytes returns the parsed image size ceiling.
func (c *StorageConfig) MaxImageSizeBytes() int64 {
	return c.maxImageSizeVal
}

// MaxVideoSizeBytes returns the parsed video size ceiling.
func (c *StorageConfig) MaxVideoSizeBytes() int64 {
	return c.maxVideoSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if size, err := units.FromHumanSize(overlay.MaxImageSize); err == nil {
		c.MaxImageSize = overlay.MaxImageSize
		c.maxImageSizeVal = size
	}
	if size, err := units.FromHumanSize(overlay.MaxVideoSize); err == nil {
		c.MaxVideoSize = overlay.MaxVideoSize
		c.maxVideoSizeVal = size
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Bucket == "" {
		c.Bucket = "article"
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = "10MB"
	}
	if c.MaxVideoSize == "" {
		c.MaxVideoSize = "100MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvStorageAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvStorageBucket); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv(EnvStorageMaxImageSize); v != "" {
		c.MaxImageSize = v
	}
	if v := os.Getenv(EnvStorageMaxVideoSize); v != "" {
		c.MaxVideoSize = v
	}
}

func (c *StorageConfig) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint required")
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")

	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket required")
	}

	size, err := units.FromHumanSize(c.MaxImageSize)
	if err != nil {
		return fmt.Errorf("invalid max_image_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_image_size must be positive")
	}
	c.maxImageSizeVal = size

	size, err = units.FromHumanSize(c.MaxVideoSize)
	if err != nil {
		return fmt.Errorf("invalid max_video_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_video_size must be positive")
	}
	c.maxVideoSizeVal = size

	return nil
}
