package models

import (
	"fmt"
	"strings"
)

// RefKind tags the addressing scheme of a Reference.
type RefKind int

// Reference kinds.
const (
	RefExternalID RefKind = iota + 1
	RefSurrogateID
	RefLabel
	RefNode
)

func (k RefKind) String() string {
	switch k {
	case RefExternalID:
		return "iri"
	case RefSurrogateID:
		return "id"
	case RefLabel:
		return "label"
	case RefNode:
		return "node"
	default:
		return "unknown"
	}
}

// MaxReferenceLength bounds the value of an identifier or label reference.
const MaxReferenceLength = 4096

// Reference identifies a node by one of four addressing schemes.
// Value is used by every kind except RefNode, which carries Node.
type Reference struct {
	Kind  RefKind
	Value string
	Node  *Node
}

// ExternalID references the node whose iri property equals iri.
func ExternalID(iri string) Reference { return Reference{Kind: RefExternalID, Value: iri} }

// SurrogateID references a node by its store-assigned id.
func SurrogateID(id string) Reference { return Reference{Kind: RefSurrogateID, Value: id} }

// LabelRef references a node by label, falling back to identifier equality.
func LabelRef(label string) Reference { return Reference{Kind: RefLabel, Value: label} }

// NodeRef wraps an already-resolved node.
func NodeRef(n *Node) Reference { return Reference{Kind: RefNode, Node: n} }

// Validate reports whether the reference can be resolved at all.
func (r Reference) Validate() error {
	switch r.Kind {
	case RefExternalID, RefSurrogateID, RefLabel:
		if r.Value == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidReference, r.Kind)
		}

		if len(r.Value) > MaxReferenceLength {
			return fmt.Errorf("%w: %w", ErrInvalidReference, ErrFieldTooLong(r.Kind.String(), MaxReferenceLength))
		}
	case RefNode:
		if r.Node == nil {
			return fmt.Errorf("%w: nil node handle", ErrInvalidReference)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidReference, int(r.Kind))
	}

	return nil
}

func (r Reference) String() string {
	if r.Kind == RefNode {
		if r.Node == nil {
			return "node:<nil>"
		}

		return "node:" + r.Node.ID
	}

	return r.Kind.String() + ":" + r.Value
}

// ParseReference reads the textual form of a reference.
//
//	iri:<identifier>   external identifier
//	id:<surrogate>     surrogate id
//	label:<label>      label
//	<scheme>://...     external identifier
//
// Anything else is treated as a label, so "skos:Concept" resolves by label first.
func ParseReference(s string) Reference {
	for _, k := range []RefKind{RefExternalID, RefSurrogateID, RefLabel} {
		if v, ok := strings.CutPrefix(s, k.String()+":"); ok {
			return Reference{Kind: k, Value: v}
		}
	}

	if i := strings.Index(s, "://"); i > 0 && !strings.ContainsAny(s[:i], "/#?") {
		return ExternalID(s)
	}

	if strings.HasPrefix(s, "urn:") {
		return ExternalID(s)
	}

	return LabelRef(s)
}
