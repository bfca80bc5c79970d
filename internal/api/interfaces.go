package api

import (
	"context"

	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// GraphService is the mapping surface the handlers consume. *mapping.Session
// implements it.
type GraphService interface {
	Ingest(ctx context.Context, src rdf.Source) (*models.IngestResult, error)
	Resolve(ctx context.Context, ref models.Reference) (*models.Node, error)
	Project(ctx context.Context, node *models.Node) (map[string]any, error)
	Nodes(ctx context.Context) ([]models.Node, error)
	NodesOfType(ctx context.Context, typeRef models.Reference) ([]models.Node, error)
	Edges(ctx context.Context, sourceIRI, targetIRI string) ([]models.Edge, error)
	TraversalTree(ctx context.Context, root models.Reference, maxDepth int) (*models.Tree, error)
	Expand(ctx context.Context, tree *models.Tree) (any, error)
	ExpandFrom(ctx context.Context, root models.Reference, maxDepth int) ([]models.Document, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// HealthChecker reports store connectivity. *dbpool.Pool implements it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
