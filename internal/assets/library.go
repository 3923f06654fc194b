package assets

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/logger"
)

// Library decodes each path once and shares the result between callers.
type Library[T any] struct {
	kind  Kind
	load  func(path string) (T, error)
	items map[string]T
	order []string
}

// NewLibrary creates a library whose failures are reported as kind.
func NewLibrary[T any](kind Kind, load func(path string) (T, error)) *Library[T] {
	return &Library[T]{
		kind:  kind,
		load:  load,
		items: make(map[string]T),
	}
}

// Get returns the decoded resource at path, loading it on first use.
// A failure is not cached; the next Get retries.
func (l *Library[T]) Get(path string) (T, error) {
	if item, ok := l.items[path]; ok {
		return item, nil
	}

	item, err := l.load(path)
	if err != nil {
		var zero T
		var le *LoadError
		if errors.As(err, &le) && le.Kind == l.kind {
			return zero, err
		}
		return zero, &LoadError{Kind: l.kind, Path: path, Err: err}
	}

	logger.Debug("resource loaded", zap.Stringer("kind", l.kind), zap.String("path", path))
	l.items[path] = item
	l.order = append(l.order, path)
	return item, nil
}

// Len returns the number of loaded resources.
func (l *Library[T]) Len() int { return len(l.items) }

// Each visits loaded resources in load order.
func (l *Library[T]) Each(fn func(path string, item T)) {
	for _, p := range l.order {
		fn(p, l.items[p])
	}
}

// Release visits loaded resources in reverse load order and forgets them.
func (l *Library[T]) Release(fn func(item T)) {
	for i := len(l.order) - 1; i >= 0; i-- {
		fn(l.items[l.order[i]])
	}
	l.items = make(map[string]T)
	l.order = nil
}
