package mapping

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/models"
)

// Resolve maps ref to exactly one node. It returns (nil, nil) when nothing
// matches and wraps models.ErrAmbiguousReference when a string lookup
// matches more than one node.
func (s *Session) Resolve(ctx context.Context, ref models.Reference) (*models.Node, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	switch ref.Kind {
	case models.RefNode:
		return ref.Node, nil
	case models.RefSurrogateID:
		return s.resolveSurrogate(ctx, ref)
	case models.RefExternalID:
		return s.resolveExternal(ctx, ref)
	case models.RefLabel:
		return s.resolveLabel(ctx, ref)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", models.ErrInvalidReference, int(ref.Kind))
	}
}

func (s *Session) resolveSurrogate(ctx context.Context, ref models.Reference) (*models.Node, error) {
	n, err := s.store.GetNode(ctx, ref.Value)
	if errors.Is(err, models.ErrNodeNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	return n, nil
}

func (s *Session) resolveExternal(ctx context.Context, ref models.Reference) (*models.Node, error) {
	matches, err := s.store.FindNodesByProperty(ctx, models.IRIKey, ref.Value)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	return unique(ref, matches)
}

// resolveLabel searches by label and falls back to identifier equality when
// no label matches.
func (s *Session) resolveLabel(ctx context.Context, ref models.Reference) (*models.Node, error) {
	matches, err := s.store.FindNodesByLabel(ctx, ref.Value)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	if len(matches) > 0 {
		return unique(ref, matches)
	}

	s.log.WithFields(logrus.Fields{"ref": ref.String()}).Debug("mapping.resolve.label_fallback")

	matches, err = s.store.FindNodesByProperty(ctx, models.IRIKey, ref.Value)
	if err != nil {
		return nil, fmt.Errorf("resolving %s by identifier: %w", ref, err)
	}

	return unique(ref, matches)
}

func unique(ref models.Reference, matches []models.Node) (*models.Node, error) {
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s matched %d nodes", models.ErrAmbiguousReference, ref, len(matches))
	}
}
