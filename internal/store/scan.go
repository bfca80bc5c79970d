package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/rdf2graph/internal/models"
)

// nodeColumns lists the columns selected for node queries.
const nodeColumns = `id::text, label, created_at`

// edgeColumns lists the columns selected for edge queries.
const edgeColumns = `id::text, source::text, target::text, label, created_at`

// scanNode scans a single row into a models.Node.
func scanNode(scan func(dest ...any) error) (*models.Node, error) {
	var n models.Node

	if err := scan(&n.ID, &n.Label, &n.CreatedAt); err != nil {
		return nil, err
	}

	return &n, nil
}

// scanEdge scans a single row into a models.Edge.
func scanEdge(scan func(dest ...any) error) (*models.Edge, error) {
	var e models.Edge

	if err := scan(&e.ID, &e.Source, &e.Target, &e.Label, &e.CreatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

// collectEdges scans all rows into an edge slice.
func collectEdges(rows pgx.Rows) ([]models.Edge, error) {
	edges := make([]models.Edge, 0, 16)

	for rows.Next() {
		e, err := scanEdge(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning edge row: %w", err)
		}

		edges = append(edges, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edge rows: %w", err)
	}

	return edges, nil
}

// collectNodes scans all rows into a node slice.
func collectNodes(rows pgx.Rows) ([]models.Node, error) {
	nodes := make([]models.Node, 0, 16)

	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}

		nodes = append(nodes, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}

	return nodes, nil
}

// collectProperties groups (node_id, key, value) rows by node, keeping row order.
func collectProperties(rows pgx.Rows) (map[string]models.PropertyMap, error) {
	out := make(map[string]models.PropertyMap)

	for rows.Next() {
		var id, key, value string
		if err := rows.Scan(&id, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}

		if out[id] == nil {
			out[id] = make(models.PropertyMap)
		}

		out[id][key] = append(out[id][key], value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating property rows: %w", err)
	}

	return out, nil
}
