package client

import (
	"encoding/json"
	"time"
)

// Node is a vertex of the property graph.
type Node struct {
	ID         string              `json:"id"`
	Label      string              `json:"label"`
	Properties map[string][]string `json:"properties,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Edge is a directed, labeled relation between two nodes.
type Edge struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// ResolvedNode pairs a node with its flattened properties. A property with
// one value holds a string; one with several holds a list.
type ResolvedNode struct {
	Node       Node           `json:"node"`
	Properties map[string]any `json:"properties"`
}

// IngestResult summarises one ingestion run.
type IngestResult struct {
	Statements    int `json:"statements"`
	NodesCreated  int `json:"nodes_created"`
	NodesReused   int `json:"nodes_reused"`
	EdgesCreated  int `json:"edges_created"`
	PropertiesSet int `json:"properties_set"`
}

// Stats holds element counts for the whole graph.
type Stats struct {
	Nodes      int64 `json:"nodes"`
	Edges      int64 `json:"edges"`
	Properties int64 `json:"properties"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Tree is a GraphSON g:Tree as returned by the tree endpoint. It can be
// posted back unchanged to Expand.
type Tree = json.RawMessage

// Document is one expanded node: its properties plus "@id", "@label" and
// one key per outgoing edge label.
type Document = map[string]any
