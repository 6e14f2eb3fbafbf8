// Package descriptor parses the per-agency descriptor files found under the
// logo directory.
package descriptor

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/hexatransit/logocheck/internal/model"
)

// ErrUnexpectedStructure is returned when a file decodes but has a shape no
// declarations can be read from.
var ErrUnexpectedStructure = errors.New("unexpected structure")

// Parser reads one descriptor file into declarations.
type Parser interface {
	Parse(r io.Reader) ([]model.Declaration, error)
	Format() string
	FileName() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate descriptor format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PictoParser{})
	r.Register(&TraficParser{})
	return r
}
