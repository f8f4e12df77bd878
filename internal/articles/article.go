// Package articles implements article persistence as a saga across two
// stores: asset blobs in bucket storage and metadata records in the article
// repository. The two stores share no transaction boundary, so every
// multi-step operation compensates for its own partial work — blobs created
// earlier in a failed operation are deleted, in reverse creation order,
// before the failure is surfaced.
package articles

import "time"

// Article is the durable record for a published article's assets.
type Article struct {
	// ID is caller-supplied, globally unique, and immutable once created.
	// It doubles as the idempotency token for create.
	ID           string    `json:"id"`
	ThumbnailURL string    `json:"thumbnail_image_url"`
	VideoURL     *string   `json:"video_file_url,omitempty"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest carries the input for creating an article. The asset paths
// reference local files that are uploaded during the create operation; the
// request itself is never persisted.
type CreateRequest struct {
	ID            string `json:"id"`
	ThumbnailPath string `json:"thumbnail_image_path"`
	VideoPath     string `json:"video_file_path,omitempty"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
}

// UpdateRequest carries a partial update. Zero-valued fields leave the
// corresponding article fields unchanged; a supplied asset path replaces
// the stored asset.
type UpdateRequest struct {
	ThumbnailPath string  `json:"thumbnail_image_path,omitempty"`
	VideoPath     string  `json:"video_file_path,omitempty"`
	Title         *string `json:"title,omitempty"`
	Subtitle      *string `json:"subtitle,omitempty"`
}

// UpdateFields is the field-level patch applied by the repository. Nil
// fields are left untouched; CreatedAt is never part of a patch.
type UpdateFields struct {
	ThumbnailURL *string
	VideoURL     *string
	Title        *string
	Subtitle     *string
}
