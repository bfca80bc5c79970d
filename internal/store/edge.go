package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/persistorai/rdf2graph/internal/models"
)

// EdgeStore provides edge writes and lookups.
type EdgeStore struct {
	Base
}

// NewEdgeStore creates a new EdgeStore.
func NewEdgeStore(base Base) *EdgeStore {
	return &EdgeStore{Base: base}
}

// CreateEdge inserts a new edge. Parallel edges with the same endpoints and
// label are allowed.
func (s *EdgeStore) CreateEdge(ctx context.Context, sourceID, targetID, label string) (*models.Edge, error) {
	if !validID(sourceID) {
		return nil, fmt.Errorf("source node %q: %w", sourceID, models.ErrNodeNotFound)
	}

	if !validID(targetID) {
		return nil, fmt.Errorf("target node %q: %w", targetID, models.ErrNodeNotFound)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating edge: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO graph_edges (id, source, target, label)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + edgeColumns

	e, err := scanEdge(tx.QueryRow(ctx, query, uuid.NewString(), sourceID, targetID, label).Scan)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("edge endpoints %s -> %s: %w", sourceID, targetID, models.ErrNodeNotFound)
		}

		return nil, fmt.Errorf("inserting edge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create edge: %w", err)
	}

	return e, nil
}
