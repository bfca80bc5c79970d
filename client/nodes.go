package client

import (
	"context"
	"net/url"
)

// NodeService handles node lookups.
type NodeService struct {
	c *Client
}

type nodeListResponse struct {
	Nodes []Node `json:"nodes"`
	Count int    `json:"count"`
}

// Resolve looks up a node by reference: "iri:", "id:" or "label:" prefixed,
// or a bare IRI or label.
func (s *NodeService) Resolve(ctx context.Context, ref string) (*ResolvedNode, error) {
	var resp ResolvedNode
	if err := s.c.get(ctx, "/api/v1/resolve", url.Values{"ref": {ref}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Properties returns the node with the given surrogate id and its flattened properties.
func (s *NodeService) Properties(ctx context.Context, id string) (*ResolvedNode, error) {
	var resp ResolvedNode
	if err := s.c.get(ctx, "/api/v1/nodes/"+url.PathEscape(id)+"/properties", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns every node with its properties.
func (s *NodeService) List(ctx context.Context) ([]Node, error) {
	var resp nodeListResponse
	if err := s.c.get(ctx, "/api/v1/nodes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// OfType returns the instances of the type node typeRef refers to.
func (s *NodeService) OfType(ctx context.Context, typeRef string) ([]Node, error) {
	var resp nodeListResponse
	if err := s.c.get(ctx, "/api/v1/types/nodes", url.Values{"type": {typeRef}}, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}
