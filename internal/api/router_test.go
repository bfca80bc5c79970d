package api_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/persistorai/rdf2graph/internal/api"
	"github.com/persistorai/rdf2graph/internal/mapping"
	"github.com/persistorai/rdf2graph/internal/memstore"
	"github.com/persistorai/rdf2graph/internal/models"
)

const aliceNT = `<http://ex.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
<http://ex.org/alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://xmlns.com/foaf/0.1/Person> .
<http://ex.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://ex.org/bob> .
<http://ex.org/bob> <http://xmlns.com/foaf/0.1/name> "Bob" .
`

func newMemoryRouter() http.Handler {
	log := testLogger()
	session := mapping.NewSession(memstore.New(log), log, mapping.Options{})

	return api.NewRouter(&api.RouterDeps{
		Log:     log,
		Graph:   session,
		Version: "test",
	})
}

func TestRouter_IngestAndQuery(t *testing.T) {
	t.Parallel()

	r := newMemoryRouter()

	w := doRequest(r, http.MethodPost, "/api/v1/ingest", aliceNT)
	if w.Code != http.StatusOK {
		t.Fatalf("ingest: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res models.IngestResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	want := models.IngestResult{Statements: 4, NodesCreated: 3, NodesReused: 3, EdgesCreated: 2, PropertiesSet: 2}
	if res != want {
		t.Errorf("expected %+v, got %+v", want, res)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/resolve?ref="+url.QueryEscape("http://ex.org/alice"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resolved struct {
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resolved.Properties["foaf:name"] != "Alice" {
		t.Errorf("expected foaf:name Alice, got %v", resolved.Properties)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/types/nodes?type=foaf:Person", "")
	if w.Code != http.StatusOK {
		t.Fatalf("types: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var typed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &typed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if typed.Count != 1 {
		t.Errorf("expected 1 person, got %d", typed.Count)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/expand?root="+url.QueryEscape("http://ex.org/alice"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expand: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var expanded struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &expanded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(expanded.Documents) != 1 {
		t.Fatalf("expected one root document, got %d", len(expanded.Documents))
	}

	bob, ok := expanded.Documents[0]["foaf:knows"].(map[string]any)
	if !ok {
		t.Fatalf("expected foaf:knows to hold one document, got %T", expanded.Documents[0]["foaf:knows"])
	}

	if bob["foaf:name"] != "Bob" {
		t.Errorf("expected nested foaf:name Bob, got %v", bob["foaf:name"])
	}
}

func TestRouter_TreeRoundTrip(t *testing.T) {
	t.Parallel()

	r := newMemoryRouter()

	if w := doRequest(r, http.MethodPost, "/api/v1/ingest", aliceNT); w.Code != http.StatusOK {
		t.Fatalf("ingest: expected 200, got %d", w.Code)
	}

	root := url.QueryEscape("http://ex.org/alice")

	w := doRequest(r, http.MethodGet, "/api/v1/tree?root="+root, "")
	if w.Code != http.StatusOK {
		t.Fatalf("tree: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/v1/expand", w.Body.String())
	if w.Code != http.StatusOK {
		t.Fatalf("expand: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Result []map[string]any `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Result) != 1 || body.Result[0][models.IDKey] == nil {
		t.Errorf("expected one root document with @id, got %s", w.Body.String())
	}
}

func TestRouter_IngestParseError(t *testing.T) {
	t.Parallel()

	r := newMemoryRouter()

	w := doRequest(r, http.MethodPost, "/api/v1/ingest", "<http://ex.org/a> <http://ex.org/p> .\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	if e := decodeError(t, w.Body.Bytes()); e.Code != api.ErrCodeParseError {
		t.Errorf("expected code %q, got %q", api.ErrCodeParseError, e.Code)
	}
}

func TestRouter_ClearAndStats(t *testing.T) {
	t.Parallel()

	r := newMemoryRouter()

	if w := doRequest(r, http.MethodPost, "/api/v1/ingest", aliceNT); w.Code != http.StatusOK {
		t.Fatalf("ingest: expected 200, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodDelete, "/api/v1/graph", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", w.Code)
	}

	w := doRequest(r, http.MethodGet, "/api/v1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}

	var stats models.GraphStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if stats != (models.GraphStats{}) {
		t.Errorf("expected empty graph, got %+v", stats)
	}
}

func TestRouter_UnknownNode(t *testing.T) {
	t.Parallel()

	r := newMemoryRouter()

	w := doRequest(r, http.MethodGet, "/api/v1/tree?root="+url.QueryEscape("http://ex.org/nobody"), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
