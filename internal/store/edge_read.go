package store

import (
	"context"
	"fmt"

	"github.com/persistorai/rdf2graph/internal/models"
)

// ListEdges returns edges whose endpoints carry the filter's identifiers,
// oldest first. Empty filter fields match everything.
func (s *EdgeStore) ListEdges(ctx context.Context, filter models.EdgeFilter) ([]models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + edgeColumns + ` FROM graph_edges e
		WHERE ($1 = '' OR EXISTS (SELECT 1 FROM graph_node_properties p
			WHERE p.node_id = e.source AND p.key = $3 AND p.value = $1))
		AND ($2 = '' OR EXISTS (SELECT 1 FROM graph_node_properties p
			WHERE p.node_id = e.target AND p.key = $3 AND p.value = $2))
		ORDER BY e.seq
		LIMIT $4`

	rows, err := s.Pool.Query(ctx, query, filter.SourceIRI, filter.TargetIRI, models.IRIKey, maxListLimit)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	return collectEdges(rows)
}

// NodesWithEdgeTo returns the distinct sources of label-edges into targetID.
func (s *EdgeStore) NodesWithEdgeTo(ctx context.Context, label, targetID string) ([]models.Node, error) {
	if !validID(targetID) {
		return []models.Node{}, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + nodeColumns + ` FROM graph_nodes n
		WHERE EXISTS (SELECT 1 FROM graph_edges e
			WHERE e.source = n.id AND e.label = $1 AND e.target = $2)
		ORDER BY n.seq
		LIMIT $3`

	rows, err := s.Pool.Query(ctx, query, label, targetID, maxListLimit)
	if err != nil {
		return nil, fmt.Errorf("querying nodes with edge to %s: %w", targetID, err)
	}
	defer rows.Close()

	return collectNodes(rows)
}
