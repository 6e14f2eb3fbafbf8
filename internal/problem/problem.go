// Package problem accumulates per-item failures so a check can run to the
// end before deciding its exit status.
package problem

import (
	"fmt"
	"strings"
)

// Kind classifies a Problem.
type Kind string

const (
	KindRead         Kind = "read"
	KindParse        Kind = "parse"
	KindStructure    Kind = "structure"
	KindTransport    Kind = "transport"
	KindArchive      Kind = "archive"
	KindMember       Kind = "member"
	KindMismatch     Kind = "mismatch"
	KindMissingAsset Kind = "missing-asset"
)

// Problem describes a single failed item.
type Problem struct {
	Kind    Kind
	Source  string // descriptor file, if any
	Agency  string
	URL     string
	Message string
}

func (p Problem) Error() string {
	var b strings.Builder
	if p.Agency != "" {
		fmt.Fprintf(&b, "Agency %s: ", p.Agency)
	}
	b.WriteString(p.Message)
	return b.String()
}

// List is an ordered collection of problems.
type List struct {
	items []Problem
}

// Add appends p.
func (l *List) Add(p Problem) {
	l.items = append(l.items, p)
}

// Addf appends a problem built from a format string.
func (l *List) Addf(kind Kind, source, format string, args ...any) {
	l.Add(Problem{Kind: kind, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Items returns the recorded problems in insertion order.
func (l *List) Items() []Problem {
	return l.items
}

// Len returns the number of problems.
func (l *List) Len() int {
	return len(l.items)
}

// Empty reports whether nothing was recorded.
func (l *List) Empty() bool {
	return len(l.items) == 0
}

// Count returns how many problems of kind were recorded.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, p := range l.items {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
