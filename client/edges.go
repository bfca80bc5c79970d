package client

import (
	"context"
	"net/url"
)

// EdgeService handles edge listings.
type EdgeService struct {
	c *Client
}

// List returns edges filtered by the IRIs of their endpoints. Empty filters
// match any node.
func (s *EdgeService) List(ctx context.Context, sourceIRI, targetIRI string) ([]Edge, error) {
	params := url.Values{}
	if sourceIRI != "" {
		params.Set("source", sourceIRI)
	}
	if targetIRI != "" {
		params.Set("target", targetIRI)
	}
	var resp struct {
		Edges []Edge `json:"edges"`
	}
	if err := s.c.get(ctx, "/api/v1/edges", params, &resp); err != nil {
		return nil, err
	}
	return resp.Edges, nil
}
