// Package models defines data types for the property graph and the documents
// expanded from it.
package models

import "time"

// IRIKey is the property key holding a node's external identifier.
const IRIKey = "iri"

// PropertyMap holds a node's multi-valued properties, values in insertion order.
type PropertyMap map[string][]string

// Node represents a vertex in the property graph.
type Node struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Properties PropertyMap `json:"properties,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// IRI returns the node's external identifier when its properties are loaded.
func (n *Node) IRI() string {
	if vs := n.Properties[IRIKey]; len(vs) > 0 {
		return vs[0]
	}

	return ""
}

// Clone returns a deep copy of the property map.
func (p PropertyMap) Clone() PropertyMap {
	out := make(PropertyMap, len(p))
	for k, vs := range p {
		out[k] = append([]string(nil), vs...)
	}

	return out
}
