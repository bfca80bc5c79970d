package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadNamespaces reads a YAML mapping of prefix to namespace IRI, e.g.
//
//	ex: http://example.org/
//	schema: https://schema.org/
func LoadNamespaces(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path.
	if err != nil {
		return nil, fmt.Errorf("reading namespaces file: %w", err)
	}

	var ns map[string]string
	if err := yaml.Unmarshal(data, &ns); err != nil {
		return nil, fmt.Errorf("parsing namespaces file %s: %w", path, err)
	}

	for prefix, iri := range ns {
		if prefix == "" || strings.ContainsAny(prefix, ": \t") {
			return nil, fmt.Errorf("namespaces file %s: invalid prefix %q", path, prefix)
		}

		if u, err := url.Parse(iri); err != nil || u.Scheme == "" {
			return nil, fmt.Errorf("namespaces file %s: prefix %q maps to non-absolute IRI %q", path, prefix, iri)
		}
	}

	return ns, nil
}
