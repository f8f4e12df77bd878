// Package tools exposes article operations as a schema-described tool
// surface for a calling agent. Every invocation returns a tagged envelope —
// {"success": true, ...} or {"success": false, "error": ...} — and no Go
// error ever crosses the boundary unconverted.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownTool indicates an invocation named a tool that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Result is the envelope returned by every tool invocation.
type Result map[string]any

// HandlerFunc executes a tool against decoded arguments. The returned map
// is merged into the success envelope; a returned error becomes the
// envelope's error field.
type HandlerFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool describes one externally invocable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handle      HandlerFunc
}

// Descriptor is the externally visible description of a registered tool.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// Registry holds the registered tools and dispatches invocations.
type Registry struct {
	tools  []Tool
	index  map[string]int
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		index:  make(map[string]int),
		logger: logger.With("system", "tools"),
	}
}

// Register adds a tool. Registering a duplicate name panics: tool names are
// wired once at startup and a collision is a programming error.
func (r *Registry) Register(t Tool) {
	if _, exists := r.index[t.Name]; exists {
		panic(fmt.Sprintf("tools: duplicate registration of %q", t.Name))
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Catalog returns descriptors for every registered tool in registration order.
func (r *Registry) Catalog() []Descriptor {
	descriptors := make([]Descriptor, len(r.tools))
	for i, t := range r.tools {
		descriptors[i] = Descriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}
	}
	return descriptors
}

// Invoke dispatches a named tool and wraps its outcome in the envelope.
// The returned error mirrors the envelope's error field so transports can
// map it to a status code; callers must still send the envelope either way.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (Result, error) {
	i, ok := r.index[name]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownTool, name)
		return Result{"success": false, "error": err.Error()}, err
	}

	data, err := r.tools[i].Handle(ctx, args)
	if err != nil {
		r.logger.Warn("tool invocation failed", "tool", name, "error", err)
		return Result{"success": false, "error": err.Error()}, err
	}

	result := Result{"success": true}
	for k, v := range data {
		result[k] = v
	}

	r.logger.Debug("tool invoked", "tool", name)
	return result, nil
}
