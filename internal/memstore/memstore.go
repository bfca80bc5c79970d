// Package memstore is an in-memory GraphStore. It backs the core tests and
// the "memory" store backend.
package memstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/domain"
	"github.com/persistorai/rdf2graph/internal/models"
)

// ListLimit caps the number of nodes returned by ListNodes.
const ListLimit = 10000

var _ domain.GraphStore = (*Store)(nil)

// Store keeps nodes, properties and edges in maps guarded by one RWMutex.
type Store struct {
	mu    sync.RWMutex
	log   *logrus.Logger
	now   func() time.Time
	seq   uint64
	order []string
	nodes map[string]models.Node
	props map[string]models.PropertyMap
	edges []models.Edge
	out   map[string][]int
}

// New returns an empty store.
func New(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}

	s := &Store{log: log, now: time.Now}
	s.reset()

	return s
}

func (s *Store) reset() {
	s.order = nil
	s.nodes = make(map[string]models.Node)
	s.props = make(map[string]models.PropertyMap)
	s.edges = nil
	s.out = make(map[string][]int)
}

// nextID must be called with the write lock held. Ids are never reused, even after Clear.
func (s *Store) nextID() string {
	s.seq++
	return strconv.FormatUint(s.seq, 10)
}

func (s *Store) CreateNode(ctx context.Context, label, iri string) (*models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := models.Node{ID: s.nextID(), Label: label, CreatedAt: s.now().UTC()}
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)
	s.props[n.ID] = models.PropertyMap{models.IRIKey: {iri}}

	return &n, nil
}

func (s *Store) AddProperty(ctx context.Context, nodeID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[nodeID]; !ok {
		return models.ErrNodeNotFound
	}

	s.props[nodeID][key] = append(s.props[nodeID][key], value)

	return nil
}

func (s *Store) GetNode(ctx context.Context, id string) (*models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return nil, models.ErrNodeNotFound
	}

	return &n, nil
}

func (s *Store) FindNodesByProperty(ctx context.Context, key, value string) ([]models.Node, error) {
	return s.filterNodes(ctx, func(n models.Node) bool {
		for _, v := range s.props[n.ID][key] {
			if v == value {
				return true
			}
		}

		return false
	})
}

func (s *Store) FindNodesByLabel(ctx context.Context, label string) ([]models.Node, error) {
	return s.filterNodes(ctx, func(n models.Node) bool { return n.Label == label })
}

func (s *Store) filterNodes(ctx context.Context, match func(models.Node) bool) ([]models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Node, 0)

	for _, id := range s.order {
		if n := s.nodes[id]; match(n) {
			out = append(out, n)
		}
	}

	return out, nil
}

func (s *Store) NodeProperties(ctx context.Context, id string) (models.PropertyMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.props[id]
	if !ok {
		return nil, models.ErrNodeNotFound
	}

	return p.Clone(), nil
}

func (s *Store) ListNodes(ctx context.Context) ([]models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Node, 0, min(len(s.order), ListLimit))

	for _, id := range s.order {
		if len(out) == ListLimit {
			break
		}

		n := s.nodes[id]
		n.Properties = s.props[id].Clone()
		out = append(out, n)
	}

	return out, nil
}

func (s *Store) CreateEdge(ctx context.Context, sourceID, targetID, label string) (*models.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[sourceID]; !ok {
		return nil, models.ErrNodeNotFound
	}

	if _, ok := s.nodes[targetID]; !ok {
		return nil, models.ErrNodeNotFound
	}

	e := models.Edge{ID: s.nextID(), Source: sourceID, Target: targetID, Label: label, CreatedAt: s.now().UTC()}
	s.out[sourceID] = append(s.out[sourceID], len(s.edges))
	s.edges = append(s.edges, e)

	return &e, nil
}

func (s *Store) iriOf(id string) string {
	if vs := s.props[id][models.IRIKey]; len(vs) > 0 {
		return vs[0]
	}

	return ""
}

func (s *Store) ListEdges(ctx context.Context, filter models.EdgeFilter) ([]models.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Edge, 0)

	for _, e := range s.edges {
		if filter.SourceIRI != "" && s.iriOf(e.Source) != filter.SourceIRI {
			continue
		}

		if filter.TargetIRI != "" && s.iriOf(e.Target) != filter.TargetIRI {
			continue
		}

		out = append(out, e)
	}

	return out, nil
}

func (s *Store) NodesWithEdgeTo(ctx context.Context, label, targetID string) ([]models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	out := make([]models.Node, 0)

	for _, e := range s.edges {
		if e.Label != label || e.Target != targetID || seen[e.Source] {
			continue
		}

		seen[e.Source] = true
		out = append(out, s.nodes[e.Source])
	}

	return out, nil
}

func (s *Store) TraversalTree(ctx context.Context, rootID string, maxDepth int) (*models.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	root, ok := s.nodes[rootID]
	if !ok {
		return nil, models.ErrNodeNotFound
	}

	visited := map[string]bool{rootID: true}
	frontier := []string{rootID}
	adjacency := make(map[string][]models.Edge)
	reached := make(map[string]models.Node)

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string

		for _, id := range frontier {
			for _, i := range s.out[id] {
				e := s.edges[i]
				if visited[e.Target] {
					continue
				}

				visited[e.Target] = true
				adjacency[id] = append(adjacency[id], e)
				reached[e.Target] = s.nodes[e.Target]
				next = append(next, e.Target)
			}
		}

		frontier = next
	}

	return models.AssembleTree(root, adjacency, reached), nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"nodes": len(s.nodes), "edges": len(s.edges)}).Info("memstore.clear")
	s.reset()

	return nil
}

func (s *Store) Stats(ctx context.Context) (*models.GraphStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.GraphStats{Nodes: int64(len(s.nodes)), Edges: int64(len(s.edges))}
	for _, p := range s.props {
		for _, vs := range p {
			stats.Properties += int64(len(vs))
		}
	}

	return stats, nil
}
