package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JinTanba/aitimes/internal/uploads"
)

// maxListLimit bounds a single list page.
const maxListLimit = 1000

type service struct {
	repo    Repository
	uploads Uploader
	logger  *slog.Logger
}

// New creates the article system from a repository and an upload gateway.
func New(repo Repository, uploader Uploader, logger *slog.Logger) System {
	return &service{
		repo:    repo,
		uploads: uploader,
		logger:  logger.With("system", "articles"),
	}
}

// Create runs the creation saga: validate input, upload the thumbnail,
// optionally validate and upload the video, then commit the record. Any
// failure after the first successful upload deletes every blob created by
// this call, last-created first, before the error is returned.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Article, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Title = strings.TrimSpace(req.Title)
	req.Subtitle = strings.TrimSpace(req.Subtitle)

	if req.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Subtitle == "" {
		return nil, fmt.Errorf("%w: subtitle is required", ErrValidation)
	}

	if err := s.uploads.Validate(req.ThumbnailPath, uploads.KindImage); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	undo := s.newCompensator()

	thumbnailURL, err := s.uploads.Upload(ctx, req.ThumbnailPath, req.ID, uploads.KindImage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpload, err)
	}
	undo.push(thumbnailURL)

	var videoURL *string
	if req.VideoPath != "" {
		if err := s.uploads.Validate(req.VideoPath, uploads.KindVideo); err != nil {
			undo.run(ctx)
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}

		url, err := s.uploads.Upload(ctx, req.VideoPath, req.ID, uploads.KindVideo)
		if err != nil {
			undo.run(ctx)
			return nil, fmt.Errorf("%w: %s", ErrUpload, err)
		}
		undo.push(url)
		videoURL = &url
	}

	article, err := s.repo.Insert(ctx, Article{
		ID:           req.ID,
		ThumbnailURL: thumbnailURL,
		VideoURL:     videoURL,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
	})
	if err != nil {
		undo.run(ctx)
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrCommit, err)
	}

	s.logger.Info("article created", "id", article.ID, "has_video", videoURL != nil)
	return article, nil
}

func (s *service) Find(ctx context.Context, id string) (*Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	return s.repo.Find(ctx, id)
}

// Update replaces any supplied assets and merges any supplied fields into
// the stored record through a field-level patch, preserving CreatedAt. A
// replaced asset's old blob is deleted best-effort only after its
// replacement upload succeeded; an upload failure aborts the update with
// the stored record untouched.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	var fields UpdateFields

	if req.ThumbnailPath != "" {
		if err := s.uploads.Validate(req.ThumbnailPath, uploads.KindImage); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}

		url, err := s.uploads.Upload(ctx, req.ThumbnailPath, id, uploads.KindImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUpload, err)
		}

		s.uploads.Delete(noCancel(ctx), existing.ThumbnailURL)
		fields.ThumbnailURL = &url
	}

	if req.VideoPath != "" {
		if err := s.uploads.Validate(req.VideoPath, uploads.KindVideo); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}

		url, err := s.uploads.Upload(ctx, req.VideoPath, id, uploads.KindVideo)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUpload, err)
		}

		if existing.VideoURL != nil {
			s.uploads.Delete(noCancel(ctx), *existing.VideoURL)
		}
		fields.VideoURL = &url
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		fields.Title = &title
	}

	if req.Subtitle != nil {
		subtitle := strings.TrimSpace(*req.Subtitle)
		if subtitle == "" {
			return nil, fmt.Errorf("%w: subtitle is required", ErrValidation)
		}
		fields.Subtitle = &subtitle
	}

	article, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrCommit, err)
	}

	s.logger.Info("article updated", "id", id)
	return article, nil
}

// Delete removes the record first, then best-effort deletes its blobs. The
// record is the source of truth for existence: an orphaned blob is a
// non-fatal leak, never a dangling reference.
func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("%w: id is required", ErrValidation)
	}

	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrCommit, err)
	}

	if existed {
		cleanup := noCancel(ctx)
		s.uploads.Delete(cleanup, existing.ThumbnailURL)
		if existing.VideoURL != nil {
			s.uploads.Delete(cleanup, *existing.VideoURL)
		}
		s.logger.Info("article deleted", "id", id)
	}

	return existed, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Article, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, maxListLimit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", ErrValidation)
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// compensator holds the public URLs of blobs created so far in one saga
// execution. run deletes them in reverse creation order on a context that
// survives cancellation of the triggering call; delete failures are logged
// and must never replace the original error.
type compensator struct {
	uploads Uploader
	logger  *slog.Logger
	urls    []string
}

func (s *service) newCompensator() *compensator {
	return &compensator{uploads: s.uploads, logger: s.logger}
}

func (c *compensator) push(url string) {
	c.urls = append(c.urls, url)
}

func (c *compensator) run(ctx context.Context) {
	ctx = noCancel(ctx)
	for i := len(c.urls) - 1; i >= 0; i-- {
		if !c.uploads.Delete(ctx, c.urls[i]) {
			c.logger.Warn("compensation delete failed", "url", c.urls[i])
		}
	}
	c.urls = nil
}

// noCancel detaches cleanup work from the caller's cancellation: a
// cancelled saga must still finish its compensating deletes.
func noCancel(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
