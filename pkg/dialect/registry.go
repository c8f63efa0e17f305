package dialect

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
	byKind     = make(map[core.Dialect]*Dialect)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// Get returns a dialect by name or alias.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// For returns the registered dialect of the given kind.
func For(kind core.Dialect) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := byKind[kind]
	return d, ok
}

// Lookup resolves a dialect by name, returning a typed error when it is unknown.
func Lookup(name string) (*Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	if d, ok := Get(name); ok {
		return d, nil
	}
	// Fall back to the alias table in core, the dialect may be registered under its canonical name.
	kind, err := core.ParseDialect(name)
	if err != nil {
		return nil, err
	}
	if d, ok := For(kind); ok {
		return d, nil
	}
	return nil, &core.InvalidDialectError{Name: name}
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
	for _, alias := range d.aliases {
		dialects[strings.ToLower(alias)] = d
	}
	byKind[d.Kind] = d
}

// List returns all registered dialect names (sorted), aliases excluded.
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(byKind))
	for _, d := range byKind {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
