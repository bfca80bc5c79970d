package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// NodeStore handles node writes and lookups.
type NodeStore struct {
	Base
}

// NewNodeStore creates a new NodeStore.
func NewNodeStore(base Base) *NodeStore {
	return &NodeStore{Base: base}
}

// CreateNode inserts a node and its iri property in one transaction.
func (s *NodeStore) CreateNode(ctx context.Context, label, iri string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating node: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO graph_nodes (id, label) VALUES ($1, $2) RETURNING ` + nodeColumns

	n, err := scanNode(tx.QueryRow(ctx, query, uuid.NewString(), label).Scan)
	if err != nil {
		return nil, fmt.Errorf("inserting node: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO graph_node_properties (node_id, key, value) VALUES ($1, $2, $3)`,
		n.ID, models.IRIKey, iri); err != nil {
		return nil, fmt.Errorf("inserting node identifier: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create node: %w", err)
	}

	s.Log.WithFields(logrus.Fields{"id": n.ID, "label": label}).Trace("store.node.create")

	return n, nil
}

// AddProperty appends a value under key for the node.
func (s *NodeStore) AddProperty(ctx context.Context, nodeID, key, value string) error {
	if !validID(nodeID) {
		return models.ErrNodeNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("adding property: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx,
		`INSERT INTO graph_node_properties (node_id, key, value) VALUES ($1, $2, $3)`,
		nodeID, key, value); err != nil {
		if isForeignKeyViolation(err) {
			return models.ErrNodeNotFound
		}

		return fmt.Errorf("inserting property: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing add property: %w", err)
	}

	return nil
}
