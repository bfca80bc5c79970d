package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// TraversalStore builds bounded traversal trees.
type TraversalStore struct {
	Base
}

// NewTraversalStore creates a TraversalStore with the given shared base.
func NewTraversalStore(base Base) *TraversalStore {
	return &TraversalStore{Base: base}
}

// TraversalTree performs an application-level BFS over outgoing edges, one
// query per level, and assembles the tree. A global visited set seeded with
// the root drops edges into nodes already reached.
func (s *TraversalStore) TraversalTree(ctx context.Context, rootID string, maxDepth int) (*models.Tree, error) {
	if !validID(rootID) {
		return nil, models.ErrNodeNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("traversing graph: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	root, err := scanNode(tx.QueryRow(ctx, `SELECT `+nodeColumns+` FROM graph_nodes WHERE id = $1`, rootID).Scan)
	if err != nil {
		return nil, fmt.Errorf("loading traversal root: %w", notFound(err))
	}

	visited := map[string]bool{rootID: true}
	frontier := []string{rootID}
	adjacency := make(map[string][]models.Edge)
	reached := make(map[string]models.Node)

	edgeSQL := `SELECT ` + edgeColumns + ` FROM graph_edges
		WHERE source = ANY($1::uuid[])
		ORDER BY array_position($1::uuid[], source), seq`

	for depth := 0; depth < maxDepth && len(frontier) > 0 && len(visited) < traverseNodeLimit; depth++ {
		rows, err := tx.Query(ctx, edgeSQL, frontier)
		if err != nil {
			return nil, fmt.Errorf("querying traversal edges at depth %d: %w", depth, err)
		}

		edges, err := collectEdges(rows)
		rows.Close()

		if err != nil {
			return nil, err
		}

		var next []string

		for _, e := range edges {
			if visited[e.Target] {
				continue
			}

			visited[e.Target] = true
			adjacency[e.Source] = append(adjacency[e.Source], e)
			next = append(next, e.Target)
		}

		if len(next) > 0 {
			nodeRows, err := tx.Query(ctx, `SELECT `+nodeColumns+` FROM graph_nodes WHERE id = ANY($1::uuid[])`, next)
			if err != nil {
				return nil, fmt.Errorf("querying traversal nodes at depth %d: %w", depth, err)
			}

			nodes, err := collectNodes(nodeRows)
			nodeRows.Close()

			if err != nil {
				return nil, err
			}

			for _, n := range nodes {
				reached[n.ID] = n
			}
		}

		frontier = next
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing traverse: %w", err)
	}

	s.Log.WithFields(logrus.Fields{"root": rootID, "depth": maxDepth, "nodes": len(visited)}).Debug("store.traverse")

	return models.AssembleTree(*root, adjacency, reached), nil
}
