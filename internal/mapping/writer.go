package mapping

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/metrics"
	"github.com/persistorai/rdf2graph/internal/models"
)

// EnsureNode returns the node identified by externalID, creating it with
// label when it does not exist. An existing node is returned unchanged.
func (s *Session) EnsureNode(ctx context.Context, externalID, label string) (*models.Node, error) {
	n, _, err := s.ensureNode(ctx, externalID, label)
	return n, err
}

func (s *Session) ensureNode(ctx context.Context, externalID, label string) (*models.Node, bool, error) {
	existing, err := s.Resolve(ctx, models.ExternalID(externalID))
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		return existing, false, nil
	}

	n, err := s.store.CreateNode(ctx, label, externalID)
	if err != nil {
		return nil, false, fmt.Errorf("creating node %q: %w", externalID, err)
	}

	metrics.GraphMutationsTotal.WithLabelValues(metrics.MutationNode).Inc()
	s.log.WithFields(logrus.Fields{"id": n.ID, "label": label, "iri": externalID}).Debug("mapping.node.create")

	return n, true, nil
}

// SetProperty appends value under key. Earlier values are kept. The
// identifier key is reserved and cannot be written.
func (s *Session) SetProperty(ctx context.Context, node *models.Node, key, value string) (*models.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node handle", models.ErrInvalidReference)
	}

	if key == models.IRIKey {
		return nil, fmt.Errorf("%w: property key %q is reserved for the node identifier", models.ErrInvalidReference, key)
	}

	if err := s.store.AddProperty(ctx, node.ID, key, value); err != nil {
		return nil, fmt.Errorf("setting property %q on node %s: %w", key, node.ID, err)
	}

	metrics.GraphMutationsTotal.WithLabelValues(metrics.MutationProperty).Inc()
	s.log.WithFields(logrus.Fields{"id": node.ID, "key": key}).Debug("mapping.property.add")

	return node, nil
}

// Link creates a new edge from source to target. Repeated calls create
// parallel edges.
func (s *Session) Link(ctx context.Context, source, target *models.Node, label string) (*models.Edge, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("%w: nil node handle", models.ErrInvalidReference)
	}

	e, err := s.store.CreateEdge(ctx, source.ID, target.ID, label)
	if err != nil {
		return nil, fmt.Errorf("linking %s -[%s]-> %s: %w", source.ID, label, target.ID, err)
	}

	metrics.GraphMutationsTotal.WithLabelValues(metrics.MutationEdge).Inc()
	s.log.WithFields(logrus.Fields{"id": e.ID, "source": source.ID, "target": target.ID, "label": label}).Debug("mapping.edge.create")

	return e, nil
}
