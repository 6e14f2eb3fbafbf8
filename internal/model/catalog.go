package model

import (
	"maps"
	"slices"
	"strings"
)

// LineSet is a deduplicated set of line identifiers.
type LineSet map[string]struct{}

// NewLineSet builds a LineSet from ids, ignoring blanks.
func NewLineSet(ids ...string) LineSet {
	s := make(LineSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts a trimmed id. Empty ids are ignored.
func (s LineSet) Add(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s LineSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s LineSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Missing returns the sorted members of s that other does not contain.
func (s LineSet) Missing(other interface{ Has(string) bool }) []string {
	var missing []string
	for id := range s {
		if !other.Has(id) {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return missing
}

// Catalog maps agency identifiers to the lines they declare.
// Agencies are remembered in first-seen order.
type Catalog struct {
	lines map[string]LineSet
	order []string
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{lines: make(map[string]LineSet)}
}

// Add records line under agency. An empty agency or line is ignored.
func (c *Catalog) Add(agency, line string) {
	if agency == "" || strings.TrimSpace(line) == "" {
		return
	}
	set, ok := c.lines[agency]
	if !ok {
		set = make(LineSet)
		c.lines[agency] = set
		c.order = append(c.order, agency)
	}
	set.Add(line)
}

// AddDeclarations records every declaration.
func (c *Catalog) AddDeclarations(decls []Declaration) {
	for _, d := range decls {
		c.Add(d.Agency, d.Line)
	}
}

// Agencies returns agency identifiers in first-seen order.
func (c *Catalog) Agencies() []string {
	return slices.Clone(c.order)
}

// Lines returns the line set for agency, or nil.
func (c *Catalog) Lines(agency string) LineSet {
	return c.lines[agency]
}

// Len returns the number of agencies.
func (c *Catalog) Len() int {
	return len(c.order)
}
