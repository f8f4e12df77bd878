package articles

import (
	"context"

	"github.com/JinTanba/aitimes/internal/uploads"
)

// System defines the article management operations. Implementations
// sequence asset uploads and repository writes with compensation for
// partial failure.
type System interface {
	Create(ctx context.Context, req CreateRequest) (*Article, error)
	Find(ctx context.Context, id string) (*Article, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Article, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]Article, error)
	Count(ctx context.Context) (int, error)
}

// Repository is the document store contract the saga depends on. Insert
// must reject a duplicate id atomically in a single round trip; Update and
// Delete must distinguish a missing record from a no-op.
type Repository interface {
	// Insert persists a new article, assigning its timestamps.
	// Returns ErrDuplicate when the id is already taken.
	Insert(ctx context.Context, article Article) (*Article, error)

	// Find returns the article with the given id, or ErrNotFound.
	Find(ctx context.Context, id string) (*Article, error)

	// Update applies the non-nil fields and refreshes UpdatedAt,
	// preserving CreatedAt. Returns ErrNotFound for a missing id.
	Update(ctx context.Context, id string, fields UpdateFields) (*Article, error)

	// Delete removes the record and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// List returns a page ordered by CreatedAt descending.
	List(ctx context.Context, limit, offset int) ([]Article, error)

	// Count returns the total number of articles.
	Count(ctx context.Context) (int, error)
}

// Uploader is the upload gateway contract consumed by the saga. Delete is
// advisory and must never raise; it reports success for logging only.
type Uploader interface {
	Validate(localPath string, kind uploads.Kind) error
	Upload(ctx context.Context, localPath, articleID string, kind uploads.Kind) (string, error)
	Delete(ctx context.Context, publicURL string) bool
}
