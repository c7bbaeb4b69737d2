package menu

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"dashkit/internal/gui"
)

// ErrPageNotFound is returned for menu entries without a registered page.
var ErrPageNotFound = errors.New("page not found")

// PageFunc builds a page into a fresh GUI.
type PageFunc func(ctx context.Context, g *gui.GUI) error

// Registry maps "module.function" names to page builders.
type Registry struct {
	pages map[string]PageFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]PageFunc)}
}

// Register adds fn under name, replacing any previous builder.
func (r *Registry) Register(name string, fn PageFunc) {
	r.pages[name] = fn
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (PageFunc, error) {
	fn, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}
	return fn, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.pages))
}
