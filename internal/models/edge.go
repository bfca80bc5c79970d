package models

import "time"

// Edge represents a directed, labeled relation between two nodes.
type Edge struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// EdgeFilter narrows an edge listing by the external identifiers of its endpoints.
// Empty fields match any node.
type EdgeFilter struct {
	SourceIRI string
	TargetIRI string
}
