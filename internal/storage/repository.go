// Package storage contains the sink-agnostic contracts for writing output
// tables, a kind-keyed factory registry and a batched copy helper. Concrete
// backends register themselves in init; importing storage/all enables every
// built-in backend.
package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Repository receives the rows of one output table.
type Repository interface {
	// CopyFrom appends rows aligned to columns and returns the number of
	// rows written.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// Close commits the table. After Close the output is complete.
	Close() error
}

// Aborter is implemented by repositories that can discard uncommitted
// output. Callers abort instead of closing when a stage fails.
type Aborter interface {
	Abort() error
}

// Config selects and configures a backend.
type Config struct {
	Kind    string
	Path    string
	Columns []string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. Registering the same kind
// again replaces the previous factory.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Discard aborts repo when it supports it, otherwise closes it. Errors are
// returned for logging only; the caller is already on a failure path.
func Discard(repo Repository) error {
	if a, ok := repo.(Aborter); ok {
		return a.Abort()
	}
	return repo.Close()
}
