package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// GraphService handles ingestion, traversal and expansion.
type GraphService struct {
	c *Client
}

// Ingest streams an N-Triples document into the graph.
func (s *GraphService) Ingest(ctx context.Context, ntriples io.Reader) (*IngestResult, error) {
	var resp IngestResult
	if err := s.c.do(ctx, http.MethodPost, "/api/v1/ingest", "application/n-triples", ntriples, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Clear erases every node, edge and property.
func (s *GraphService) Clear(ctx context.Context) error {
	return s.c.del(ctx, "/api/v1/graph")
}

// Tree returns the breadth-first traversal tree rooted at ref. A depth of 0
// uses the server default.
func (s *GraphService) Tree(ctx context.Context, ref string, depth int) (Tree, error) {
	var resp Tree
	if err := s.c.get(ctx, "/api/v1/tree", rootParams(ref, depth), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExpandFrom traverses from ref and returns the expanded documents.
func (s *GraphService) ExpandFrom(ctx context.Context, ref string, depth int) ([]Document, error) {
	var resp struct {
		Documents []Document `json:"documents"`
	}
	if err := s.c.get(ctx, "/api/v1/expand", rootParams(ref, depth), &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Expand expands a tree previously returned by Tree. The result is a list of
// documents for a node layer or a single document for an edge layer.
func (s *GraphService) Expand(ctx context.Context, tree Tree) (any, error) {
	var resp struct {
		Result any `json:"result"`
	}
	if err := s.c.post(ctx, "/api/v1/expand", tree, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func rootParams(ref string, depth int) url.Values {
	params := url.Values{"root": {ref}}
	if depth > 0 {
		params.Set("depth", strconv.Itoa(depth))
	}
	return params
}
