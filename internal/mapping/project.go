package mapping

import (
	"context"
	"fmt"

	"github.com/persistorai/rdf2graph/internal/models"
)

// Project returns the node's properties flattened: a key with one value maps
// to the bare value, a key with several maps to the ordered list.
func (s *Session) Project(ctx context.Context, node *models.Node) (map[string]any, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node handle", models.ErrInvalidReference)
	}

	props, err := s.store.NodeProperties(ctx, node.ID)
	if err != nil {
		return nil, fmt.Errorf("reading properties of node %s: %w", node.ID, err)
	}

	return Flatten(props), nil
}

// Flatten applies the projection rule to p. Keys without values are omitted.
func Flatten(p models.PropertyMap) map[string]any {
	out := make(map[string]any, len(p))

	for k, vs := range p {
		switch len(vs) {
		case 0:
			continue
		case 1:
			out[k] = vs[0]
		default:
			out[k] = append([]string(nil), vs...)
		}
	}

	return out
}

// Deflate collapses one-element slices to their sole element, repeatedly, and
// returns every other value unchanged.
func Deflate(v any) any {
	for {
		switch vs := v.(type) {
		case []any:
			if len(vs) != 1 {
				return v
			}

			v = vs[0]
		case []string:
			if len(vs) != 1 {
				return v
			}

			v = vs[0]
		case []models.Document:
			if len(vs) != 1 {
				return v
			}

			v = vs[0]
		default:
			return v
		}
	}
}
