package tools

import (
	"context"
	"fmt"

	"github.com/JinTanba/aitimes/internal/articles"
	"github.com/JinTanba/aitimes/internal/uploads"
	"github.com/JinTanba/aitimes/pkg/decode"
)

// Paging defaults for list_articles.
const (
	defaultListLimit  = 100
	defaultListOffset = 0
)

// RegisterArticleTools wires the article tool set against the article
// system and the upload gateway.
func RegisterArticleTools(r *Registry, sys articles.System, uploader articles.Uploader) {
	r.Register(Tool{
		Name:        "create_article",
		Description: "Create a new article, uploading its thumbnail and optional video to storage",
		InputSchema: createArticleSchema,
		Handle:      createArticle(sys),
	})
	r.Register(Tool{
		Name:        "get_article",
		Description: "Get an article by ID",
		InputSchema: articleIDSchema,
		Handle:      getArticle(sys),
	})
	r.Register(Tool{
		Name:        "update_article",
		Description: "Update an article's assets, title, or subtitle by ID",
		InputSchema: updateArticleSchema,
		Handle:      updateArticle(sys),
	})
	r.Register(Tool{
		Name:        "list_articles",
		Description: "List articles with pagination, newest first",
		InputSchema: listArticlesSchema,
		Handle:      listArticles(sys),
	})
	r.Register(Tool{
		Name:        "delete_article",
		Description: "Delete an article and its stored assets",
		InputSchema: articleIDSchema,
		Handle:      deleteArticle(sys),
	})
	r.Register(Tool{
		Name:        "upload_video",
		Description: "Upload a video file to storage for an article",
		InputSchema: uploadVideoSchema,
		Handle:      uploadVideo(uploader),
	})
}

func createArticle(sys articles.System) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		req, err := decode.FromMap[articles.CreateRequest](args)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", articles.ErrValidation, err)
		}

		article, err := sys.Create(ctx, req)
		if err != nil {
			return nil, err
		}

		return map[string]any{"article": article}, nil
	}
}

func getArticle(sys articles.System) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		id, _ := args["article_id"].(string)

		article, err := sys.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		return map[string]any{"article": article}, nil
	}
}

func updateArticle(sys articles.System) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		id, _ := args["id"].(string)

		req, err := decode.FromMap[articles.UpdateRequest](args)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", articles.ErrValidation, err)
		}

		article, err := sys.Update(ctx, id, req)
		if err != nil {
			return nil, err
		}

		return map[string]any{"article": article}, nil
	}
}

func listArticles(sys articles.System) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		limit := intArg(args, "limit", defaultListLimit)
		offset := intArg(args, "offset", defaultListOffset)

		items, err := sys.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		total, err := sys.Count(ctx)
		if err != nil {
			return nil, err
		}

		if items == nil {
			items = []articles.Article{}
		}

		return map[string]any{
			"articles": items,
			"count":    len(items),
			"total":    total,
		}, nil
	}
}

func deleteArticle(sys articles.System) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		id, _ := args["article_id"].(string)

		deleted, err := sys.Delete(ctx, id)
		if err != nil {
			return nil, err
		}

		message := fmt.Sprintf("Article deleted: %s", id)
		if !deleted {
			message = fmt.Sprintf("Article not found: %s", id)
		}

		return map[string]any{"deleted": deleted, "message": message}, nil
	}
}

func uploadVideo(uploader articles.Uploader) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		path, _ := args["video_file_path"].(string)
		articleID, _ := args["article_id"].(string)

		if articleID == "" {
			return nil, fmt.Errorf("%w: article_id is required", articles.ErrValidation)
		}
		if err := uploader.Validate(path, uploads.KindVideo); err != nil {
			return nil, fmt.Errorf("%w: %s", articles.ErrValidation, err)
		}

		url, err := uploader.Upload(ctx, path, articleID, uploads.KindVideo)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", articles.ErrUpload, err)
		}

		return map[string]any{"video_url": url}, nil
	}
}

// intArg reads a numeric argument that JSON decoding surfaces as float64.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

var createArticleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":                   map[string]any{"type": "string"},
		"thumbnail_image_path": map[string]any{"type": "string"},
		"video_file_path":      map[string]any{"type": "string"},
		"title":                map[string]any{"type": "string"},
		"subtitle":             map[string]any{"type": "string"},
	},
	"required": []string{"id", "thumbnail_image_path", "title", "subtitle"},
}

var updateArticleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":                   map[string]any{"type": "string"},
		"thumbnail_image_path": map[string]any{"type": "string"},
		"video_file_path":      map[string]any{"type": "string"},
		"title":                map[string]any{"type": "string"},
		"subtitle":             map[string]any{"type": "string"},
	},
	"required": []string{"id"},
}

var articleIDSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"article_id": map[string]any{"type": "string"},
	},
	"required": []string{"article_id"},
}

var listArticlesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"limit":  map[string]any{"type": "integer", "default": defaultListLimit},
		"offset": map[string]any{"type": "integer", "default": defaultListOffset},
	},
}

var uploadVideoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"video_file_path": map[string]any{"type": "string"},
		"article_id":      map[string]any{"type": "string"},
	},
	"required": []string{"video_file_path", "article_id"},
}
