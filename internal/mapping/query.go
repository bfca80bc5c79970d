package mapping

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// Nodes lists nodes with their properties.
func (s *Session) Nodes(ctx context.Context) ([]models.Node, error) {
	nodes, err := s.store.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	return nodes, nil
}

// NodesOfType returns the nodes linked to the type node by the session's type
// predicate.
func (s *Session) NodesOfType(ctx context.Context, typeRef models.Reference) ([]models.Node, error) {
	typ, err := s.mustResolve(ctx, typeRef)
	if err != nil {
		return nil, err
	}

	nodes, err := s.store.NodesWithEdgeTo(ctx, s.opts.TypePredicate, typ.ID)
	if err != nil {
		return nil, fmt.Errorf("listing nodes of type %s: %w", typeRef, err)
	}

	return nodes, nil
}

// Edges lists edges whose endpoints carry the given identifiers. An empty
// identifier does not filter.
func (s *Session) Edges(ctx context.Context, sourceIRI, targetIRI string) ([]models.Edge, error) {
	edges, err := s.store.ListEdges(ctx, models.EdgeFilter{SourceIRI: sourceIRI, TargetIRI: targetIRI})
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}

	return edges, nil
}

// TraversalTree returns the bounded outgoing traversal from root. A depth of
// zero or less uses the session default.
func (s *Session) TraversalTree(ctx context.Context, root models.Reference, maxDepth int) (*models.Tree, error) {
	n, err := s.mustResolve(ctx, root)
	if err != nil {
		return nil, err
	}

	depth := s.depth(maxDepth)

	tree, err := s.store.TraversalTree(ctx, n.ID, depth)
	if err != nil {
		return nil, fmt.Errorf("traversing from %s: %w", root, err)
	}

	s.log.WithFields(logrus.Fields{"root": n.ID, "depth": depth, "reached": tree.Depth()}).Debug("mapping.traverse")

	return tree, nil
}

// ExpandFrom traverses from root and expands the result.
func (s *Session) ExpandFrom(ctx context.Context, root models.Reference, maxDepth int) ([]models.Document, error) {
	tree, err := s.TraversalTree(ctx, root, maxDepth)
	if err != nil {
		return nil, err
	}

	out, err := s.Expand(ctx, tree)
	if err != nil {
		return nil, err
	}

	docs, _ := out.([]models.Document)

	return docs, nil
}

// Clear erases every node, edge and property.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}

	s.log.Info("mapping.clear")

	return nil
}

// Stats returns node, edge and property counts.
func (s *Session) Stats(ctx context.Context) (*models.GraphStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading graph stats: %w", err)
	}

	return stats, nil
}

// mustResolve resolves ref and turns absence into models.ErrNodeNotFound.
func (s *Session) mustResolve(ctx context.Context, ref models.Reference) (*models.Node, error) {
	n, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrNodeNotFound, ref)
	}

	return n, nil
}
