package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// GraphSON type tags used by the tree wire shape.
const (
	graphSONTree   = "g:Tree"
	graphSONVertex = "g:Vertex"
	graphSONEdge   = "g:Edge"
)

// Tree is a traversal result rooted at one or more nodes. Layers alternate
// between node keys and edge keys; an empty tree marks a leaf.
type Tree struct {
	Entries []TreeEntry
}

// TreeEntry pairs a node or edge handle with the subtree reached through it.
type TreeEntry struct {
	Key   TreeKey
	Value *Tree
}

// TreeKey holds exactly one of Node or Edge.
type TreeKey struct {
	Node *Node
	Edge *Edge
}

// IsNode reports whether the key is a node handle and nothing else.
func (k TreeKey) IsNode() bool { return k.Node != nil && k.Edge == nil }

// IsEdge reports whether the key is an edge handle and nothing else.
func (k TreeKey) IsEdge() bool { return k.Edge != nil && k.Node == nil }

// IsLeaf reports whether the tree has no entries.
func (t *Tree) IsLeaf() bool { return t == nil || len(t.Entries) == 0 }

// Depth returns the number of edge hops on the longest path of the tree.
func (t *Tree) Depth() int {
	if t.IsLeaf() {
		return 0
	}

	deepest := 0

	for _, e := range t.Entries {
		d := e.Value.Depth()
		if e.Key.IsEdge() {
			d++
		}

		if d > deepest {
			deepest = d
		}
	}

	return deepest
}

// AssembleTree builds the tree rooted at root from per-node outgoing edges.
// Every edge target must be present in nodes; targets are assumed unique so the
// recursion cannot cycle.
func AssembleTree(root Node, adjacency map[string][]Edge, nodes map[string]Node) *Tree {
	return &Tree{Entries: []TreeEntry{assembleNode(root, adjacency, nodes)}}
}

func assembleNode(n Node, adjacency map[string][]Edge, nodes map[string]Node) TreeEntry {
	node := n
	children := &Tree{}

	for i := range adjacency[n.ID] {
		edge := adjacency[n.ID][i]
		target := nodes[edge.Target]
		children.Entries = append(children.Entries, TreeEntry{
			Key:   TreeKey{Edge: &edge},
			Value: &Tree{Entries: []TreeEntry{assembleNode(target, adjacency, nodes)}},
		})
	}

	return TreeEntry{Key: TreeKey{Node: &node}, Value: children}
}

type graphSON struct {
	Type  string          `json:"@type"`
	Value json.RawMessage `json:"@value"`
}

type graphSONEntry struct {
	Key   json.RawMessage `json:"key"`
	Value json.RawMessage `json:"value"`
}

type graphSONElement struct {
	ID    json.RawMessage `json:"id"`
	Label string          `json:"label"`
	OutV  json.RawMessage `json:"outV,omitempty"`
	InV   json.RawMessage `json:"inV,omitempty"`
}

// MarshalJSON encodes the tree in the GraphSON g:Tree shape.
func (t *Tree) MarshalJSON() ([]byte, error) {
	entries := make([]graphSONEntry, 0)

	if t != nil {
		for i, e := range t.Entries {
			key, err := marshalKey(e.Key)
			if err != nil {
				return nil, fmt.Errorf("encoding tree entry %d: %w", i, err)
			}

			value := e.Value
			if value == nil {
				value = &Tree{}
			}

			child, err := value.MarshalJSON()
			if err != nil {
				return nil, err
			}

			entries = append(entries, graphSONEntry{Key: key, Value: child})
		}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}

	return json.Marshal(graphSON{Type: graphSONTree, Value: raw})
}

func marshalKey(k TreeKey) (json.RawMessage, error) {
	var (
		typ string
		el  graphSONElement
	)

	switch {
	case k.IsNode():
		typ = graphSONVertex
		el = graphSONElement{ID: quote(k.Node.ID), Label: k.Node.Label}
	case k.IsEdge():
		typ = graphSONEdge
		el = graphSONElement{ID: quote(k.Edge.ID), Label: k.Edge.Label, OutV: quote(k.Edge.Source), InV: quote(k.Edge.Target)}
	default:
		return nil, &StructuralError{Reason: "key must hold exactly one of node or edge"}
	}

	raw, err := json.Marshal(el)
	if err != nil {
		return nil, err
	}

	return json.Marshal(graphSON{Type: typ, Value: raw})
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s) //nolint:errcheck // strings always encode.
	return b
}

// UnmarshalJSON decodes the GraphSON g:Tree shape. Anything else is a *StructuralError.
func (t *Tree) UnmarshalJSON(data []byte) error {
	decoded, err := decodeTree(data, "$")
	if err != nil {
		return err
	}

	*t = *decoded

	return nil
}

func decodeTree(data []byte, path string) (*Tree, error) {
	var wrapper graphSON
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, &StructuralError{Path: path, Reason: "expected a typed tree object: " + err.Error()}
	}

	if wrapper.Type != graphSONTree {
		return nil, &StructuralError{Path: path, Reason: fmt.Sprintf("expected @type %q, got %q", graphSONTree, wrapper.Type)}
	}

	var raw []graphSONEntry
	if len(wrapper.Value) > 0 && !bytes.Equal(wrapper.Value, []byte("null")) {
		if err := json.Unmarshal(wrapper.Value, &raw); err != nil {
			return nil, &StructuralError{Path: path, Reason: "@value must be a list of key/value pairs"}
		}
	}

	tree := &Tree{Entries: make([]TreeEntry, 0, len(raw))}

	for i, r := range raw {
		entryPath := fmt.Sprintf("%s[%d]", path, i)
		if len(r.Key) == 0 || len(r.Value) == 0 {
			return nil, &StructuralError{Path: entryPath, Reason: "entry requires both key and value"}
		}

		key, err := decodeKey(r.Key, entryPath+".key")
		if err != nil {
			return nil, err
		}

		child, err := decodeTree(r.Value, entryPath+".value")
		if err != nil {
			return nil, err
		}

		tree.Entries = append(tree.Entries, TreeEntry{Key: key, Value: child})
	}

	return tree, nil
}

func decodeKey(data []byte, path string) (TreeKey, error) {
	var typed graphSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return TreeKey{}, &StructuralError{Path: path, Reason: "expected a typed element"}
	}

	var el graphSONElement
	if err := json.Unmarshal(typed.Value, &el); err != nil {
		return TreeKey{}, &StructuralError{Path: path, Reason: "element @value must be an object"}
	}

	id, err := decodeID(el.ID)
	if err != nil {
		return TreeKey{}, &StructuralError{Path: path + ".id", Reason: err.Error()}
	}

	switch typed.Type {
	case graphSONVertex:
		return TreeKey{Node: &Node{ID: id, Label: el.Label}}, nil
	case graphSONEdge:
		out, err := decodeOptionalID(el.OutV)
		if err != nil {
			return TreeKey{}, &StructuralError{Path: path + ".outV", Reason: err.Error()}
		}

		in, err := decodeOptionalID(el.InV)
		if err != nil {
			return TreeKey{}, &StructuralError{Path: path + ".inV", Reason: err.Error()}
		}

		return TreeKey{Edge: &Edge{ID: id, Label: el.Label, Source: out, Target: in}}, nil
	default:
		return TreeKey{}, &StructuralError{Path: path, Reason: fmt.Sprintf("unexpected element type %q", typed.Type)}
	}
}

func decodeOptionalID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	return decodeID(raw)
}

// decodeID accepts a string, a bare number or a typed number ({"@type":"g:Int64","@value":1}).
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(&n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String(), nil
		}
	}

	var typed graphSON
	if err := json.Unmarshal(raw, &typed); err == nil && len(typed.Value) > 0 {
		return decodeID(typed.Value)
	}

	return "", fmt.Errorf("id must be a string or number")
}
