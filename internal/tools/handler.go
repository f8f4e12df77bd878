package tools

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JinTanba/aitimes/internal/articles"
	"github.com/JinTanba/aitimes/pkg/decode"
	"github.com/JinTanba/aitimes/pkg/handlers"
)

// Handler exposes the tool registry over HTTP: GET /tools lists the
// catalog, POST /tools/{name} invokes a tool with a JSON argument object.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a tool surface HTTP handler.
func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "tools"),
	}
}

// Register mounts the tool routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /tools", h.Catalog)
	mux.HandleFunc("POST /tools/{name}", h.Invoke)
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"tools": h.registry.Catalog(),
	})
}

// Invoke always responds with the success/error envelope. The HTTP status
// mirrors the domain error for transport observability; envelope consumers
// may ignore it.
func (h *Handler) Invoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	args, err := decode.MapFromReader(r.Body)
	if err != nil {
		handlers.RespondJSON(w, http.StatusBadRequest, Result{
			"success": false,
			"error":   "invalid JSON argument object",
		})
		return
	}

	result, err := h.registry.Invoke(r.Context(), name, args)
	if err != nil {
		handlers.RespondJSON(w, h.status(err), result)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) status(err error) int {
	if errors.Is(err, ErrUnknownTool) {
		return http.StatusNotFound
	}
	return articles.MapHTTPStatus(err)
}
