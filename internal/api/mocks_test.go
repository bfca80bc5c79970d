package api_test

import (
	"context"
	"errors"

	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

var errNotMocked = errors.New("not mocked")

// mockGraph implements api.GraphService for testing. Unset functions fail
// with errNotMocked.
type mockGraph struct {
	ingestFn        func(ctx context.Context, src rdf.Source) (*models.IngestResult, error)
	resolveFn       func(ctx context.Context, ref models.Reference) (*models.Node, error)
	projectFn       func(ctx context.Context, node *models.Node) (map[string]any, error)
	nodesFn         func(ctx context.Context) ([]models.Node, error)
	nodesOfTypeFn   func(ctx context.Context, typeRef models.Reference) ([]models.Node, error)
	edgesFn         func(ctx context.Context, sourceIRI, targetIRI string) ([]models.Edge, error)
	traversalTreeFn func(ctx context.Context, root models.Reference, maxDepth int) (*models.Tree, error)
	expandFn        func(ctx context.Context, tree *models.Tree) (any, error)
	expandFromFn    func(ctx context.Context, root models.Reference, maxDepth int) ([]models.Document, error)
	clearFn         func(ctx context.Context) error
	statsFn         func(ctx context.Context) (*models.GraphStats, error)
}

func (m *mockGraph) Ingest(ctx context.Context, src rdf.Source) (*models.IngestResult, error) {
	if m.ingestFn == nil {
		return nil, errNotMocked
	}

	return m.ingestFn(ctx, src)
}

func (m *mockGraph) Resolve(ctx context.Context, ref models.Reference) (*models.Node, error) {
	if m.resolveFn == nil {
		return nil, errNotMocked
	}

	return m.resolveFn(ctx, ref)
}

func (m *mockGraph) Project(ctx context.Context, node *models.Node) (map[string]any, error) {
	if m.projectFn == nil {
		return nil, errNotMocked
	}

	return m.projectFn(ctx, node)
}

func (m *mockGraph) Nodes(ctx context.Context) ([]models.Node, error) {
	if m.nodesFn == nil {
		return nil, errNotMocked
	}

	return m.nodesFn(ctx)
}

func (m *mockGraph) NodesOfType(ctx context.Context, typeRef models.Reference) ([]models.Node, error) {
	if m.nodesOfTypeFn == nil {
		return nil, errNotMocked
	}

	return m.nodesOfTypeFn(ctx, typeRef)
}

func (m *mockGraph) Edges(ctx context.Context, sourceIRI, targetIRI string) ([]models.Edge, error) {
	if m.edgesFn == nil {
		return nil, errNotMocked
	}

	return m.edgesFn(ctx, sourceIRI, targetIRI)
}

func (m *mockGraph) TraversalTree(ctx context.Context, root models.Reference, maxDepth int) (*models.Tree, error) {
	if m.traversalTreeFn == nil {
		return nil, errNotMocked
	}

	return m.traversalTreeFn(ctx, root, maxDepth)
}

func (m *mockGraph) Expand(ctx context.Context, tree *models.Tree) (any, error) {
	if m.expandFn == nil {
		return nil, errNotMocked
	}

	return m.expandFn(ctx, tree)
}

func (m *mockGraph) ExpandFrom(ctx context.Context, root models.Reference, maxDepth int) ([]models.Document, error) {
	if m.expandFromFn == nil {
		return nil, errNotMocked
	}

	return m.expandFromFn(ctx, root, maxDepth)
}

func (m *mockGraph) Clear(ctx context.Context) error {
	if m.clearFn == nil {
		return errNotMocked
	}

	return m.clearFn(ctx)
}

func (m *mockGraph) Stats(ctx context.Context) (*models.GraphStats, error) {
	if m.statsFn == nil {
		return nil, errNotMocked
	}

	return m.statsFn(ctx)
}

// mockChecker implements api.HealthChecker.
type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(context.Context) error { return m.err }
