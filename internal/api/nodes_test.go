package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/persistorai/rdf2graph/internal/api"
	"github.com/persistorai/rdf2graph/internal/httputil"
	"github.com/persistorai/rdf2graph/internal/models"
)

func decodeError(t *testing.T, body []byte) httputil.ErrorBody {
	t.Helper()

	var e httputil.ErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}

	return e
}

func TestResolve_Found(t *testing.T) {
	t.Parallel()

	var got models.Reference

	graph := &mockGraph{
		resolveFn: func(_ context.Context, ref models.Reference) (*models.Node, error) {
			got = ref
			return &models.Node{ID: "1", Label: "ex:alice"}, nil
		},
		projectFn: func(context.Context, *models.Node) (map[string]any, error) {
			return map[string]any{"iri": "http://ex.org/alice"}, nil
		},
	}

	r := newTestRouter()
	h := api.NewNodeHandler(graph, testLogger())
	r.GET("/resolve", h.Resolve)

	w := doRequest(r, http.MethodGet, "/resolve?ref=label:ex:alice", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got.Kind != models.RefLabel || got.Value != "ex:alice" {
		t.Errorf("expected label reference ex:alice, got %v", got)
	}

	var body struct {
		Node       models.Node    `json:"node"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Node.ID != "1" {
		t.Errorf("expected node id '1', got %q", body.Node.ID)
	}

	if body.Properties["iri"] != "http://ex.org/alice" {
		t.Errorf("unexpected properties: %v", body.Properties)
	}
}

func TestResolve_MissingRef(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewNodeHandler(&mockGraph{}, testLogger())
	r.GET("/resolve", h.Resolve)

	w := doRequest(r, http.MethodGet, "/resolve", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestResolve_Absent(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		resolveFn: func(context.Context, models.Reference) (*models.Node, error) { return nil, nil },
	}

	r := newTestRouter()
	h := api.NewNodeHandler(graph, testLogger())
	r.GET("/resolve", h.Resolve)

	w := doRequest(r, http.MethodGet, "/resolve?ref=nobody", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	if e := decodeError(t, w.Body.Bytes()); e.Code != api.ErrCodeNotFound {
		t.Errorf("expected code %q, got %q", api.ErrCodeNotFound, e.Code)
	}
}

func TestResolve_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"ambiguous", fmt.Errorf("%w: label x matched 2 nodes", models.ErrAmbiguousReference), http.StatusConflict, api.ErrCodeAmbiguousReference},
		{"not found", models.ErrNodeNotFound, http.StatusNotFound, api.ErrCodeNotFound},
		{"invalid", models.ErrInvalidReference, http.StatusBadRequest, api.ErrCodeInvalidRequest},
		{"structural", &models.StructuralError{Path: "$[0]", Reason: "mixed layer"}, http.StatusUnprocessableEntity, api.ErrCodeStructuralError},
		{"internal", fmt.Errorf("connection reset"), http.StatusInternalServerError, api.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			graph := &mockGraph{
				resolveFn: func(context.Context, models.Reference) (*models.Node, error) { return nil, tt.err },
			}

			r := newTestRouter()
			h := api.NewNodeHandler(graph, testLogger())
			r.GET("/resolve", h.Resolve)

			w := doRequest(r, http.MethodGet, "/resolve?ref=x", "")

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}

			if e := decodeError(t, w.Body.Bytes()); e.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, e.Code)
			}
		})
	}
}

func TestNodeProperties_BySurrogateID(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		resolveFn: func(_ context.Context, ref models.Reference) (*models.Node, error) {
			if ref.Kind != models.RefSurrogateID {
				t.Errorf("expected surrogate reference, got %v", ref.Kind)
			}

			return &models.Node{ID: ref.Value}, nil
		},
		projectFn: func(context.Context, *models.Node) (map[string]any, error) {
			return map[string]any{"ex:nick": []string{"al", "ally"}}, nil
		},
	}

	r := newTestRouter()
	h := api.NewNodeHandler(graph, testLogger())
	r.GET("/nodes/:id/properties", h.Properties)

	w := doRequest(r, http.MethodGet, "/nodes/42/properties", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestNodeList_Empty(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		nodesFn: func(context.Context) ([]models.Node, error) { return nil, nil },
	}

	r := newTestRouter()
	h := api.NewNodeHandler(graph, testLogger())
	r.GET("/nodes", h.List)

	w := doRequest(r, http.MethodGet, "/nodes", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Nodes []models.Node `json:"nodes"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Nodes == nil || body.Count != 0 {
		t.Errorf("expected empty non-null list, got %s", w.Body.String())
	}
}

func TestNodesOfType_PassesReference(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		nodesOfTypeFn: func(_ context.Context, ref models.Reference) ([]models.Node, error) {
			if ref.Value != "foaf:Person" {
				t.Errorf("expected foaf:Person, got %q", ref.Value)
			}

			return []models.Node{{ID: "1"}, {ID: "2"}}, nil
		},
	}

	r := newTestRouter()
	h := api.NewNodeHandler(graph, testLogger())
	r.GET("/types/nodes", h.OfType)

	w := doRequest(r, http.MethodGet, "/types/nodes?type=foaf:Person", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Count != 2 {
		t.Errorf("expected 2 nodes, got %d", body.Count)
	}
}

func TestEdgeList_Filters(t *testing.T) {
	t.Parallel()

	graph := &mockGraph{
		edgesFn: func(_ context.Context, source, target string) ([]models.Edge, error) {
			if source != "http://ex.org/a" || target != "" {
				t.Errorf("unexpected filters %q %q", source, target)
			}

			return []models.Edge{{ID: "e1", Source: "1", Target: "2", Label: "ex:knows"}}, nil
		},
	}

	r := newTestRouter()
	h := api.NewEdgeHandler(graph, testLogger())
	r.GET("/edges", h.List)

	w := doRequest(r, http.MethodGet, "/edges?source=http://ex.org/a", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
