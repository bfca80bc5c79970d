package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/api"
	"github.com/persistorai/rdf2graph/internal/mapping"
	"github.com/persistorai/rdf2graph/internal/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

// newMemoryServer runs the real router over an in-memory graph.
func newMemoryServer(t *testing.T) *Client {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	session := mapping.NewSession(memstore.New(log), log, mapping.Options{})
	srv := httptest.NewServer(api.NewRouter(&api.RouterDeps{Log: log, Graph: session, Version: "test"}))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

const sample = `<http://ex.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
<http://ex.org/alice> <http://xmlns.com/foaf/0.1/nick> "al" .
<http://ex.org/alice> <http://xmlns.com/foaf/0.1/nick> "ally" .
<http://ex.org/alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://xmlns.com/foaf/0.1/Person> .
<http://ex.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://ex.org/bob> .
<http://ex.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://ex.org/carol> .
`

func TestHealth(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.0" {
		t.Errorf("unexpected health %+v", resp)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/resolve": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 409, map[string]string{"code": "ambiguous_reference", "message": "label x matched 2 nodes", "request_id": "r1"})
		},
		"GET /api/v1/nodes": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(502)
			w.Write([]byte("bad gateway")) //nolint:errcheck
		},
	})

	_, err := c.Nodes.Resolve(context.Background(), "x")
	if !IsAmbiguous(err) {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if !strings.Contains(err.Error(), "request_id=r1") {
		t.Errorf("expected request id in %q", err.Error())
	}

	_, err = c.Nodes.List(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != "unknown" || apiErr.Message != "bad gateway" {
		t.Errorf("unexpected fallback error %+v", apiErr)
	}
}

func TestRoundTripAgainstServer(t *testing.T) {
	c := newMemoryServer(t)
	ctx := context.Background()

	res, err := c.Graph.Ingest(ctx, strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if res.Statements != 6 || res.EdgesCreated != 3 || res.PropertiesSet != 3 {
		t.Errorf("unexpected ingest result %+v", res)
	}

	alice, err := c.Nodes.Resolve(ctx, "http://ex.org/alice")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	nicks, ok := alice.Properties["foaf:nick"].([]any)
	if !ok || len(nicks) != 2 || nicks[0] != "al" || nicks[1] != "ally" {
		t.Errorf("expected ordered nick list, got %v", alice.Properties["foaf:nick"])
	}

	props, err := c.Nodes.Properties(ctx, alice.Node.ID)
	if err != nil {
		t.Fatalf("Properties() error: %v", err)
	}
	if props.Properties["foaf:name"] != "Alice" {
		t.Errorf("expected foaf:name Alice, got %v", props.Properties)
	}

	people, err := c.Nodes.OfType(ctx, "foaf:Person")
	if err != nil {
		t.Fatalf("OfType() error: %v", err)
	}
	if len(people) != 1 || people[0].ID != alice.Node.ID {
		t.Errorf("expected alice as the only person, got %v", people)
	}

	edges, err := c.Edges.List(ctx, "http://ex.org/alice", "http://ex.org/bob")
	if err != nil {
		t.Fatalf("Edges.List() error: %v", err)
	}
	if len(edges) != 1 || edges[0].Label != "foaf:knows" {
		t.Errorf("expected one foaf:knows edge, got %v", edges)
	}

	tree, err := c.Graph.Tree(ctx, "http://ex.org/alice", 1)
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}

	expanded, err := c.Graph.Expand(ctx, tree)
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	docs, ok := expanded.([]any)
	if !ok || len(docs) != 1 {
		t.Fatalf("expected one root document, got %v", expanded)
	}

	root := docs[0].(map[string]any)
	friends, ok := root["foaf:knows"].([]any)
	if !ok || len(friends) != 2 {
		t.Errorf("expected two foaf:knows documents, got %v", root["foaf:knows"])
	}

	fromRoot, err := c.Graph.ExpandFrom(ctx, "http://ex.org/alice", 1)
	if err != nil {
		t.Fatalf("ExpandFrom() error: %v", err)
	}
	if len(fromRoot) != 1 || fromRoot[0]["@id"] != alice.Node.ID {
		t.Errorf("unexpected ExpandFrom result %v", fromRoot)
	}

	if err := c.Graph.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.Nodes != 0 || stats.Edges != 0 {
		t.Errorf("expected empty graph, got %+v", stats)
	}

	if _, err := c.Nodes.Resolve(ctx, "http://ex.org/alice"); !IsNotFound(err) {
		t.Errorf("expected not found after clear, got %v", err)
	}
}

func TestExpandMalformedTree(t *testing.T) {
	c := newMemoryServer(t)

	_, err := c.Graph.Expand(context.Background(), Tree(`{"@type":"g:Tree","@value":[{"key":{"@type":"g:Vertex","@value":{"id":"1","label":"x"}}}]}`))
	if !IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
}
