package rdf

import (
	"fmt"
	"maps"
	"strings"
)

// Well-known namespace IRIs.
const (
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD  = "http://www.w3.org/2001/XMLSchema#"
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"
	NamespaceDCT  = "http://purl.org/dc/terms/"
	NamespaceFOAF = "http://xmlns.com/foaf/0.1/"
)

// RDFType is the rdf:type predicate IRI.
const RDFType = NamespaceRDF + "type"

var defaultBindings = map[string]string{
	"rdf":  NamespaceRDF,
	"rdfs": NamespaceRDFS,
	"owl":  NamespaceOWL,
	"xsd":  NamespaceXSD,
	"skos": NamespaceSKOS,
	"dct":  NamespaceDCT,
	"foaf": NamespaceFOAF,
}

// Namespaces binds prefixes to namespace IRIs. The zero value is not usable;
// use NewNamespaces or DefaultNamespaces.
type Namespaces struct {
	byPrefix map[string]string
}

// NewNamespaces returns an empty table.
func NewNamespaces() *Namespaces {
	return &Namespaces{byPrefix: make(map[string]string)}
}

// DefaultNamespaces returns a table holding the rdf, rdfs, owl, xsd, skos, dct
// and foaf bindings.
func DefaultNamespaces() *Namespaces {
	ns := NewNamespaces()
	maps.Copy(ns.byPrefix, defaultBindings)

	return ns
}

// Bind adds or replaces a binding.
func (n *Namespaces) Bind(prefix, iri string) error {
	if strings.ContainsAny(prefix, ": \t\n") {
		return fmt.Errorf("invalid prefix %q", prefix)
	}

	if iri == "" {
		return fmt.Errorf("empty namespace for prefix %q", prefix)
	}

	n.byPrefix[prefix] = iri

	return nil
}

// Compact returns "prefix:local" for an IRI term covered by a bound namespace.
// The longest matching namespace wins; the local part must be non-empty and
// free of '/', '#' and '?'. Blank nodes and literals never compact.
func (n *Namespaces) Compact(t Term) (string, bool) {
	if t.Kind != KindIRI {
		return "", false
	}

	var (
		bestPrefix string
		bestNS     string
	)

	for p, ns := range n.byPrefix {
		if !strings.HasPrefix(t.Value, ns) {
			continue
		}

		local := t.Value[len(ns):]
		if local == "" || strings.ContainsAny(local, "/#?") {
			continue
		}

		// Ties on length go to the lexically smaller prefix so output is stable.
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && p < bestPrefix) {
			bestPrefix, bestNS = p, ns
		}
	}

	if bestNS == "" {
		return "", false
	}

	return bestPrefix + ":" + t.Value[len(bestNS):], true
}

// Expand resolves a prefixed name to a full IRI.
func (n *Namespaces) Expand(qname string) (string, bool) {
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		return "", false
	}

	ns, ok := n.byPrefix[prefix]
	if !ok {
		return "", false
	}

	return ns + local, true
}
