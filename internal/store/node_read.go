package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/persistorai/rdf2graph/internal/models"
)

// GetNode returns a single node by id.
func (s *NodeStore) GetNode(ctx context.Context, id string) (*models.Node, error) {
	if !validID(id) {
		return nil, models.ErrNodeNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + nodeColumns + ` FROM graph_nodes WHERE id = $1`

	n, err := scanNode(s.Pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if err = notFound(err); errors.Is(err, models.ErrNodeNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("getting node: %w", err)
	}

	return n, nil
}

// FindNodesByProperty returns nodes holding value under key, oldest first.
func (s *NodeStore) FindNodesByProperty(ctx context.Context, key, value string) ([]models.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM graph_nodes
		WHERE id IN (SELECT node_id FROM graph_node_properties WHERE key = $1 AND value = $2)
		ORDER BY seq`

	return s.queryNodes(ctx, "finding nodes by property", query, key, value)
}

// FindNodesByLabel returns nodes with the given label, oldest first.
func (s *NodeStore) FindNodesByLabel(ctx context.Context, label string) ([]models.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM graph_nodes WHERE label = $1 ORDER BY seq`

	return s.queryNodes(ctx, "finding nodes by label", query, label)
}

func (s *NodeStore) queryNodes(ctx context.Context, op, query string, args ...any) ([]models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return nodes, nil
}

// NodeProperties returns the node's property values in insertion order.
func (s *NodeStore) NodeProperties(ctx context.Context, id string) (models.PropertyMap, error) {
	if !validID(id) {
		return nil, models.ErrNodeNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading node properties: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM graph_nodes WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking node existence: %w", err)
	}

	if !exists {
		return nil, models.ErrNodeNotFound
	}

	rows, err := tx.Query(ctx,
		`SELECT node_id::text, key, value FROM graph_node_properties WHERE node_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying node properties: %w", err)
	}
	defer rows.Close()

	byNode, err := collectProperties(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing read node properties: %w", err)
	}

	props := byNode[id]
	if props == nil {
		props = make(models.PropertyMap)
	}

	return props, nil
}

// ListNodes returns up to maxListLimit nodes, oldest first, with properties loaded.
func (s *NodeStore) ListNodes(ctx context.Context) ([]models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, `SELECT `+nodeColumns+` FROM graph_nodes ORDER BY seq LIMIT $1`, maxListLimit)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}

	nodes, err := collectNodes(rows)
	rows.Close()

	if err != nil {
		return nil, err
	}

	ids := make([]string, len(nodes))
	for i := range nodes {
		ids[i] = nodes[i].ID
	}

	propRows, err := tx.Query(ctx,
		`SELECT node_id::text, key, value FROM graph_node_properties
		WHERE node_id = ANY($1::uuid[]) ORDER BY seq`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying node properties: %w", err)
	}
	defer propRows.Close()

	byNode, err := collectProperties(propRows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing list nodes: %w", err)
	}

	for i := range nodes {
		nodes[i].Properties = byNode[nodes[i].ID]
	}

	return nodes, nil
}
