package store

import (
	"context"
	"fmt"

	"github.com/persistorai/rdf2graph/internal/models"
)

// AdminStore handles whole-graph operations.
type AdminStore struct {
	Base
}

// NewAdminStore creates an AdminStore with the given shared base.
func NewAdminStore(base Base) *AdminStore {
	return &AdminStore{Base: base}
}

// Clear removes every node, property and edge.
func (s *AdminStore) Clear(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.Pool.Exec(ctx, `TRUNCATE graph_edges, graph_node_properties, graph_nodes`); err != nil {
		return fmt.Errorf("truncating graph tables: %w", err)
	}

	s.Log.Info("store.clear")

	return nil
}

// Stats counts nodes, edges and property values.
func (s *AdminStore) Stats(ctx context.Context) (*models.GraphStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stats models.GraphStats

	err := s.Pool.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM graph_nodes),
		(SELECT count(*) FROM graph_edges),
		(SELECT count(*) FROM graph_node_properties)`).Scan(&stats.Nodes, &stats.Edges, &stats.Properties)
	if err != nil {
		return nil, fmt.Errorf("counting graph rows: %w", err)
	}

	return &stats, nil
}
