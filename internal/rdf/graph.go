package rdf

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Graph is an in-memory set of triples. Duplicate triples are ignored and
// insertion order is preserved.
type Graph struct {
	ns      *Namespaces
	triples []Triple
	seen    map[Triple]struct{}
}

// NewGraph returns an empty graph compacting with ns, or with the default
// bindings when ns is nil.
func NewGraph(ns *Namespaces) *Graph {
	if ns == nil {
		ns = DefaultNamespaces()
	}

	return &Graph{ns: ns, seen: make(map[Triple]struct{})}
}

// Add inserts t and reports whether it was new.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.seen[t]; ok {
		return false
	}

	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)

	return true
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.triples) }

// Namespaces returns the graph's namespace table.
func (g *Graph) Namespaces() *Namespaces { return g.ns }

// Triples yields the triples in insertion order.
func (g *Graph) Triples() iter.Seq2[Triple, error] {
	return func(yield func(Triple, error) bool) {
		for _, t := range g.triples {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Compact delegates to the graph's namespace table.
func (g *Graph) Compact(t Term) (string, bool) { return g.ns.Compact(t) }

// ReadNTriples decodes r fully into the graph and returns the number of new triples.
func (g *Graph) ReadNTriples(r io.Reader) (int, error) {
	dec := NewDecoder(r)
	added := 0

	for {
		t, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return added, nil
		}

		if err != nil {
			return added, fmt.Errorf("reading n-triples: %w", err)
		}

		if g.Add(t) {
			added++
		}
	}
}

// Stream is a Source that decodes statements lazily from a reader. It can be
// ranged over once.
type Stream struct {
	dec *Decoder
	ns  *Namespaces
}

// NewStream returns a Source reading N-Triples from r.
func NewStream(r io.Reader, ns *Namespaces) *Stream {
	if ns == nil {
		ns = DefaultNamespaces()
	}

	return &Stream{dec: NewDecoder(r), ns: ns}
}

// Triples yields decoded statements; a decode error is yielded once and ends the sequence.
func (s *Stream) Triples() iter.Seq2[Triple, error] {
	return func(yield func(Triple, error) bool) {
		for {
			t, err := s.dec.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				yield(Triple{}, err)
				return
			}

			if !yield(t, nil) {
				return
			}
		}
	}
}

// Compact delegates to the stream's namespace table.
func (s *Stream) Compact(t Term) (string, bool) { return s.ns.Compact(t) }
