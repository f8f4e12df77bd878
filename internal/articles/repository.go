package articles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JinTanba/aitimes/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a Postgres-backed article repository.
func NewRepository(db *sql.DB, logger *slog.Logger) Repository {
	return &repo{
		db:     db,
		logger: logger.With("system", "articles-repository"),
	}
}

func (r *repo) Insert(ctx context.Context, article Article) (*Article, error) {
	q := fmt.Sprintf(`INSERT INTO articles (id, thumbnail_url, video_url, title, subtitle)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, articleColumns)

	inserted, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Article, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			article.ID, article.ThumbnailURL, article.VideoURL, article.Title, article.Subtitle,
		}, scanArticle)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("article inserted", "id", inserted.ID)
	return &inserted, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Article, error) {
	q := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)

	article, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanArticle)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &article, nil
}

func (r *repo) Update(ctx context.Context, id string, fields UpdateFields) (*Article, error) {
	q := fmt.Sprintf(`UPDATE articles SET
			thumbnail_url = COALESCE($1::text, thumbnail_url),
			video_url = COALESCE($2::text, video_url),
			title = COALESCE($3::text, title),
			subtitle = COALESCE($4::text, subtitle),
			updated_at = now()
		WHERE id = $5
		RETURNING %s`, articleColumns)

	article, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Article, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			fields.ThumbnailURL, fields.VideoURL, fields.Title, fields.Subtitle, id,
		}, scanArticle)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &article, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	err := repository.ExecExpectOne(ctx, r.db, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		if repository.MapError(err, ErrNotFound, ErrDuplicate) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repo) List(ctx context.Context, limit, offset int) ([]Article, error) {
	q := fmt.Sprintf(`SELECT %s FROM articles
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`, articleColumns)

	items, err := repository.QueryMany(ctx, r.db, q, []any{limit, offset}, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}
