package gotags

import (
	"strings"
	"sync"

	"github.com/bethropolis/gotags/internal/logger"
)

// TypeMap resolves a Go field type to an ORM column type.
// The source is read once, on first lookup, and cached for the life of the
// process.
type TypeMap struct {
	once  sync.Once
	load  func() map[string]string
	types map[string]string
}

// NewTypeMap wraps load, which returns the configured mapping. Keys may list
// several Go types separated by commas, e.g. "int, int32".
func NewTypeMap(load func() map[string]string) *TypeMap {
	return &TypeMap{load: load}
}

func (m *TypeMap) init() {
	m.types = make(map[string]string)
	if m.load == nil {
		return
	}
	for goTypes, column := range m.load() {
		for _, t := range strings.Split(goTypes, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				m.types[t] = column
			}
		}
	}
	logger.DebugTagf("gotags", "ORM type map loaded with %d entries", len(m.types))
}

// Lookup returns the column type for goType, or "" when it is not configured.
func (m *TypeMap) Lookup(goType string) string {
	if m == nil {
		return ""
	}
	m.once.Do(m.init)
	return m.types[goType]
}

// Len reports how many Go types are mapped.
func (m *TypeMap) Len() int {
	if m == nil {
		return 0
	}
	m.once.Do(m.init)
	return len(m.types)
}
