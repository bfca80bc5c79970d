// Package mapping implements the bidirectional mapping between triples and
// the labeled property graph: identity resolution, idempotent writes,
// ingestion, property projection and traversal tree expansion.
//
// All operations are methods on an explicit Session; the package holds no
// global state.
package mapping

import (
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/domain"
)

// Traversal depth bounds.
const (
	DefaultMaxDepth = 4
	MaxDepthLimit   = 32
)

// DefaultTypePredicate is the edge label NodesOfType follows.
const DefaultTypePredicate = "rdf:type"

// Options tune a Session. Zero values take the defaults.
type Options struct {
	// MaxDepth is the traversal depth used when a caller passes zero.
	MaxDepth int
	// TypePredicate is the edge label linking an instance to its type node.
	TypePredicate string
}

// Session binds the mapping operations to a graph store and a logger.
type Session struct {
	store domain.GraphStore
	log   *logrus.Logger
	opts  Options
}

// NewSession returns a session over store.
func NewSession(store domain.GraphStore, log *logrus.Logger, opts Options) *Session {
	if log == nil {
		log = logrus.New()
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	opts.MaxDepth = min(opts.MaxDepth, MaxDepthLimit)

	if opts.TypePredicate == "" {
		opts.TypePredicate = DefaultTypePredicate
	}

	return &Session{store: store, log: log, opts: opts}
}

// Options returns the effective options.
func (s *Session) Options() Options { return s.opts }

// depth normalizes a requested traversal depth.
func (s *Session) depth(requested int) int {
	if requested <= 0 {
		return s.opts.MaxDepth
	}

	return min(requested, MaxDepthLimit)
}
