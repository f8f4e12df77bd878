package articles

import "github.com/JinTanba/aitimes/pkg/repository"

// articleColumns is the select list shared by every article query.
const articleColumns = "id, thumbnail_url, video_url, title, subtitle, created_at, updated_at"

func scanArticle(s repository.Scanner) (Article, error) {
	var a Article
	err := s.Scan(
		&a.ID,
		&a.ThumbnailURL,
		&a.VideoURL,
		&a.Title,
		&a.Subtitle,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
