package mapping

import (
	"context"
	"fmt"
	"time"

	"github.com/persistorai/rdf2graph/internal/metrics"
	"github.com/persistorai/rdf2graph/internal/models"
)

type layerKind int

const (
	nodeLayer layerKind = iota + 1
	edgeLayer
)

// Expand converts a traversal tree into nested documents. It returns nil for
// an empty tree, []models.Document when the top layer holds nodes and a
// models.Document keyed by edge label when it holds edges. A tree that does
// not alternate node and edge layers yields a *models.StructuralError.
func (s *Session) Expand(ctx context.Context, tree *models.Tree) (any, error) {
	if tree.IsLeaf() {
		return nil, nil
	}

	start := time.Now()
	defer func() { metrics.ExpansionDuration.Observe(time.Since(start).Seconds()) }()

	kind, err := kindOf(tree, "$")
	if err != nil {
		return nil, err
	}

	if kind == nodeLayer {
		docs, err := s.expandNodeLayer(ctx, tree, "$")
		if err != nil {
			return nil, err
		}

		return docs, nil
	}

	doc, err := s.expandEdgeLayer(ctx, tree, "$")
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// kindOf classifies a non-empty layer, rejecting malformed or mixed keys.
func kindOf(tree *models.Tree, path string) (layerKind, error) {
	var kind layerKind

	for i, e := range tree.Entries {
		var k layerKind

		switch {
		case e.Key.IsNode():
			k = nodeLayer
		case e.Key.IsEdge():
			k = edgeLayer
		default:
			return 0, &models.StructuralError{Path: entryPath(path, i) + ".key", Reason: "key must hold exactly one of node or edge"}
		}

		if kind != 0 && k != kind {
			return 0, &models.StructuralError{Path: entryPath(path, i), Reason: "layer mixes node and edge keys"}
		}

		kind = k
	}

	return kind, nil
}

func entryPath(path string, i int) string { return fmt.Sprintf("%s[%d]", path, i) }

func (s *Session) expandNodeLayer(ctx context.Context, tree *models.Tree, path string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(tree.Entries))

	for i, e := range tree.Entries {
		doc, err := s.expandNode(ctx, e, entryPath(path, i))
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *Session) expandNode(ctx context.Context, e models.TreeEntry, path string) (models.Document, error) {
	props, err := s.Project(ctx, e.Key.Node)
	if err != nil {
		return nil, err
	}

	doc := models.Document(props)
	doc[models.IDKey] = e.Key.Node.ID
	doc[models.LabelKey] = e.Key.Node.Label

	if e.Value.IsLeaf() {
		return doc, nil
	}

	childPath := path + ".value"

	kind, err := kindOf(e.Value, childPath)
	if err != nil {
		return nil, err
	}

	if kind != edgeLayer {
		return nil, &models.StructuralError{Path: childPath, Reason: "node must be followed by an edge layer"}
	}

	children, err := s.expandEdgeLayer(ctx, e.Value, childPath)
	if err != nil {
		return nil, err
	}

	return models.Merge(doc, children), nil
}

// expandEdgeLayer groups target documents by edge label in traversal order
// and deflates each group.
func (s *Session) expandEdgeLayer(ctx context.Context, tree *models.Tree, path string) (models.Document, error) {
	var labels []string

	groups := make(map[string][]models.Document)

	for i, e := range tree.Entries {
		p := entryPath(path, i)

		if e.Value.IsLeaf() {
			return nil, &models.StructuralError{Path: p, Reason: fmt.Sprintf("edge %s has no target node", e.Key.Edge.ID)}
		}

		kind, err := kindOf(e.Value, p+".value")
		if err != nil {
			return nil, err
		}

		if kind != nodeLayer {
			return nil, &models.StructuralError{Path: p + ".value", Reason: "edge must be followed by a node layer"}
		}

		targets, err := s.expandNodeLayer(ctx, e.Value, p+".value")
		if err != nil {
			return nil, err
		}

		label := e.Key.Edge.Label
		if _, ok := groups[label]; !ok {
			labels = append(labels, label)
		}

		groups[label] = append(groups[label], targets...)
	}

	out := make(models.Document, len(labels))
	for _, l := range labels {
		out[l] = Deflate(groups[l])
	}

	return out, nil
}
