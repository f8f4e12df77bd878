package tools_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/JinTanba/aitimes/internal/articles"
	"github.com/JinTanba/aitimes/internal/tools"
	"github.com/JinTanba/aitimes/internal/uploads"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeSystem satisfies articles.System with canned responses, recording
// the arguments each operation received.
type fakeSystem struct {
	article   articles.Article
	createErr error
	findErr   error
	updateErr error

	deleted   bool
	deleteErr error

	listItems  []articles.Article
	listErr    error
	total      int
	listLimit  int
	listOffset int

	lastCreate articles.CreateRequest
	lastID     string
}

func (f *fakeSystem) Create(ctx context.Context, req articles.CreateRequest) (*articles.Article, error) {
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &f.article, nil
}

func (f *fakeSystem) Find(ctx context.Context, id string) (*articles.Article, error) {
	f.lastID = id
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &f.article, nil
}

func (f *fakeSystem) Update(ctx context.Context, id string, req articles.UpdateRequest) (*articles.Article, error) {
	f.lastID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &f.article, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id string) (bool, error) {
	f.lastID = id
	return f.deleted, f.deleteErr
}

func (f *fakeSystem) List(ctx context.Context, limit, offset int) ([]articles.Article, error) {
	f.listLimit = limit
	f.listOffset = offset
	return f.listItems, f.listErr
}

func (f *fakeSystem) Count(ctx context.Context) (int, error) {
	return f.total, nil
}

type fakeGateway struct {
	validateErr error
	uploadURL   string
	uploadErr   error
	lastPath    string
	lastKind    uploads.Kind
}

func (f *fakeGateway) Validate(localPath string, kind uploads.Kind) error {
	f.lastPath = localPath
	f.lastKind = kind
	return f.validateErr
}

func (f *fakeGateway) Upload(ctx context.Context, localPath, articleID string, kind uploads.Kind) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadURL, nil
}

func (f *fakeGateway) Delete(ctx context.Context, publicURL string) bool {
	return true
}

func newRegistry(sys *fakeSystem, gateway *fakeGateway) *tools.Registry {
	r := tools.NewRegistry(testLogger())
	tools.RegisterArticleTools(r, sys, gateway)
	return r
}

func sampleArticle() articles.Article {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return articles.Article{
		ID:           "a1",
		ThumbnailURL: "https://cdn.test/storage/v1/object/public/article/thumbnails/a1/x.png",
		Title:        "T",
		Subtitle:     "S",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCatalog(t *testing.T) {
	registry := newRegistry(&fakeSystem{}, &fakeGateway{})

	catalog := registry.Catalog()

	want := []string{
		"create_article",
		"get_article",
		"update_article",
		"list_articles",
		"delete_article",
		"upload_video",
	}
	if len(catalog) != len(want) {
		t.Fatalf("catalog size = %d, want %d", len(catalog), len(want))
	}
	for i, name := range want {
		if catalog[i].Name != name {
			t.Errorf("catalog[%d] = %s, want %s", i, catalog[i].Name, name)
		}
		if catalog[i].InputSchema == nil {
			t.Errorf("catalog[%d] %s has no input schema", i, name)
		}
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()

	registry := tools.NewRegistry(testLogger())
	tool := tools.Tool{Name: "x", Handle: func(context.Context, map[string]any) (map[string]any, error) {
		return nil, nil
	}}
	registry.Register(tool)
	registry.Register(tool)
}

func TestInvoke_UnknownTool(t *testing.T) {
	registry := newRegistry(&fakeSystem{}, &fakeGateway{})

	result, err := registry.Invoke(context.Background(), "summon_article", nil)
	if err == nil {
		t.Fatal("Invoke() of unknown tool succeeded, want error")
	}
	if result["success"] != false {
		t.Errorf("envelope success = %v, want false", result["success"])
	}
	if msg, _ := result["error"].(string); !strings.Contains(msg, "summon_article") {
		t.Errorf("envelope error = %q, want tool name", msg)
	}
}

func TestInvoke_CreateArticle(t *testing.T) {
	sys := &fakeSystem{article: sampleArticle()}
	registry := newRegistry(sys, &fakeGateway{})

	result, err := registry.Invoke(context.Background(), "create_article", map[string]any{
		"id":                   "a1",
		"thumbnail_image_path": "img.png",
		"title":                "T",
		"subtitle":             "S",
	})
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}

	if result["success"] != true {
		t.Errorf("envelope success = %v, want true", result["success"])
	}
	if result["article"] == nil {
		t.Error("envelope missing article")
	}
	if sys.lastCreate.ID != "a1" || sys.lastCreate.ThumbnailPath != "img.png" {
		t.Errorf("decoded request = %+v, want id=a1 thumbnail=img.png", sys.lastCreate)
	}
}

func TestInvoke_CreateArticle_Failure(t *testing.T) {
	sys := &fakeSystem{createErr: articles.ErrDuplicate}
	registry := newRegistry(sys, &fakeGateway{})

	result, err := registry.Invoke(context.Background(), "create_article", map[string]any{
		"id": "a1", "thumbnail_image_path": "img.png", "title": "T", "subtitle": "S",
	})
	if err == nil {
		t.Fatal("Invoke() succeeded, want duplicate error")
	}
	if result["success"] != false {
		t.Errorf("envelope success = %v, want false", result["success"])
	}
	if result["error"] == "" {
		t.Error("envelope missing error message")
	}
}

func TestInvoke_ListArticles_Defaults(t *testing.T) {
	sys := &fakeSystem{total: 7}
	registry := newRegistry(sys, &fakeGateway{})

	result, err := registry.Invoke(context.Background(), "list_articles", map[string]any{})
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}

	if sys.listLimit != 100 || sys.listOffset != 0 {
		t.Errorf("list args = (%d, %d), want defaults (100, 0)", sys.listLimit, sys.listOffset)
	}
	if result["count"] != 0 {
		t.Errorf("count = %v, want 0", result["count"])
	}
	if result["total"] != 7 {
		t.Errorf("total = %v, want 7", result["total"])
	}
	if items, ok := result["articles"].([]articles.Article); !ok || items == nil {
		t.Errorf("articles = %v, want empty slice", result["articles"])
	}
}

func TestInvoke_ListArticles_NumericArgs(t *testing.T) {
	sys := &fakeSystem{listItems: []articles.Article{sampleArticle()}, total: 1}
	registry := newRegistry(sys, &fakeGateway{})

	// JSON-decoded numbers arrive as float64.
	result, err := registry.Invoke(context.Background(), "list_articles", map[string]any{
		"limit":  float64(5),
		"offset": float64(10),
	})
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}

	if sys.listLimit != 5 || sys.listOffset != 10 {
		t.Errorf("list args = (%d, %d), want (5, 10)", sys.listLimit, sys.listOffset)
	}
	if result["count"] != 1 {
		t.Errorf("count = %v, want 1", result["count"])
	}
}

func TestInvoke_DeleteArticle_Messages(t *testing.T) {
	tests := []struct {
		name        string
		deleted     bool
		wantMessage string
	}{
		{"existing", true, "Article deleted: a1"},
		{"missing", false, "Article not found: a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{deleted: tt.deleted}
			registry := newRegistry(sys, &fakeGateway{})

			result, err := registry.Invoke(context.Background(), "delete_article", map[string]any{
				"article_id": "a1",
			})
			if err != nil {
				t.Fatalf("Invoke() failed: %v", err)
			}

			if result["deleted"] != tt.deleted {
				t.Errorf("deleted = %v, want %v", result["deleted"], tt.deleted)
			}
			if result["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", result["message"], tt.wantMessage)
			}
		})
	}
}

func TestInvoke_UploadVideo(t *testing.T) {
	gateway := &fakeGateway{uploadURL: "https://cdn.test/storage/v1/object/public/article/videos/a1/v.mp4"}
	registry := newRegistry(&fakeSystem{}, gateway)

	result, err := registry.Invoke(context.Background(), "upload_video", map[string]any{
		"video_file_path": "clip.mp4",
		"article_id":      "a1",
	})
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}

	if result["video_url"] != gateway.uploadURL {
		t.Errorf("video_url = %v, want %q", result["video_url"], gateway.uploadURL)
	}
	if gateway.lastKind != uploads.KindVideo {
		t.Errorf("validated kind = %s, want video", gateway.lastKind)
	}
}

func TestInvoke_UploadVideo_RequiresArticleID(t *testing.T) {
	registry := newRegistry(&fakeSystem{}, &fakeGateway{})

	_, err := registry.Invoke(context.Background(), "upload_video", map[string]any{
		"video_file_path": "clip.mp4",
	})
	if err == nil {
		t.Fatal("Invoke() without article_id succeeded, want validation error")
	}
}

func newServer(t *testing.T, sys *fakeSystem, gateway *fakeGateway) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	tools.NewHandler(newRegistry(sys, gateway), testLogger()).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestHandler_Catalog(t *testing.T) {
	server := newServer(t, &fakeSystem{}, &fakeGateway{})

	resp, err := http.Get(server.URL + "/tools")
	if err != nil {
		t.Fatalf("GET /tools failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	listed, ok := body["tools"].([]any)
	if !ok || len(listed) != 6 {
		t.Errorf("tools = %v, want 6 descriptors", body["tools"])
	}
}

func TestHandler_Invoke(t *testing.T) {
	sys := &fakeSystem{article: sampleArticle()}
	server := newServer(t, sys, &fakeGateway{})

	resp, err := http.Post(server.URL+"/tools/get_article", "application/json",
		strings.NewReader(`{"article_id":"a1"}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("envelope success = %v, want true", body["success"])
	}
	if sys.lastID != "a1" {
		t.Errorf("looked up id = %q, want a1", sys.lastID)
	}
}

func TestHandler_Invoke_EmptyBody(t *testing.T) {
	sys := &fakeSystem{total: 0}
	server := newServer(t, sys, &fakeGateway{})

	resp, err := http.Post(server.URL+"/tools/list_articles", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty argument body", resp.StatusCode)
	}
	decodeBody(t, resp)
}

func TestHandler_Invoke_BadJSON(t *testing.T) {
	server := newServer(t, &fakeSystem{}, &fakeGateway{})

	resp, err := http.Post(server.URL+"/tools/get_article", "application/json",
		strings.NewReader(`{"article_id":`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != false {
		t.Errorf("envelope success = %v, want false", body["success"])
	}
}

func TestHandler_Invoke_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		body       string
		sys        *fakeSystem
		wantStatus int
	}{
		{"unknown tool", "summon_article", `{}`, &fakeSystem{}, http.StatusNotFound},
		{"not found", "get_article", `{"article_id":"ghost"}`, &fakeSystem{findErr: articles.ErrNotFound}, http.StatusNotFound},
		{"duplicate", "create_article", `{"id":"a1"}`, &fakeSystem{createErr: articles.ErrDuplicate}, http.StatusConflict},
		{"validation", "create_article", `{}`, &fakeSystem{createErr: articles.ErrValidation}, http.StatusBadRequest},
		{"upload failure", "create_article", `{"id":"a1"}`, &fakeSystem{createErr: articles.ErrUpload}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.sys, &fakeGateway{})

			resp, err := http.Post(server.URL+"/tools/"+tt.tool, "application/json",
				strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body := decodeBody(t, resp)
			if body["success"] != false {
				t.Errorf("envelope success = %v, want false", body["success"])
			}
		})
	}
}
