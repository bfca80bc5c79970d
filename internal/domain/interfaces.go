// Package domain defines the store contracts shared by the mapping core, the
// HTTP API and the CLI. Consumers should depend on these interfaces rather
// than on a concrete store.
package domain

import (
	"context"

	"github.com/persistorai/rdf2graph/internal/models"
)

// NodeStore defines node writes and lookups.
type NodeStore interface {
	// CreateNode creates a node and sets its iri property in one step.
	CreateNode(ctx context.Context, label, iri string) (*models.Node, error)
	// AddProperty appends value to the node's key. Existing values are kept.
	AddProperty(ctx context.Context, nodeID, key, value string) error
	// GetNode returns models.ErrNodeNotFound when id does not exist.
	GetNode(ctx context.Context, id string) (*models.Node, error)
	FindNodesByProperty(ctx context.Context, key, value string) ([]models.Node, error)
	FindNodesByLabel(ctx context.Context, label string) ([]models.Node, error)
	NodeProperties(ctx context.Context, id string) (models.PropertyMap, error)
	// ListNodes returns nodes with their properties loaded.
	ListNodes(ctx context.Context) ([]models.Node, error)
}

// EdgeStore defines edge writes and lookups.
type EdgeStore interface {
	// CreateEdge always creates a new edge; duplicates are allowed.
	CreateEdge(ctx context.Context, sourceID, targetID, label string) (*models.Edge, error)
	ListEdges(ctx context.Context, filter models.EdgeFilter) ([]models.Edge, error)
	// NodesWithEdgeTo returns the sources of label-edges pointing at targetID.
	NodesWithEdgeTo(ctx context.Context, label, targetID string) ([]models.Node, error)
}

// TraversalStore defines bounded traversal.
type TraversalStore interface {
	// TraversalTree follows outgoing edges breadth-first from rootID for at most
	// maxDepth hops. Targets already visited, the root included, are dropped.
	TraversalTree(ctx context.Context, rootID string, maxDepth int) (*models.Tree, error)
}

// AdminStore defines whole-graph operations.
type AdminStore interface {
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// GraphStore is the full contract consumed by the mapping core.
type GraphStore interface {
	NodeStore
	EdgeStore
	TraversalStore
	AdminStore
}
