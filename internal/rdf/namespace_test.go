package rdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persistorai/rdf2graph/internal/rdf"
)

func TestNamespaces_Compact(t *testing.T) {
	ns := rdf.DefaultNamespaces()
	require.NoError(t, ns.Bind("ex", "http://example.org/"))
	require.NoError(t, ns.Bind("exv", "http://example.org/vocab/"))

	tests := []struct {
		name string
		term rdf.Term
		want string
		ok   bool
	}{
		{name: "rdf type", term: rdf.IRI(rdf.RDFType), want: "rdf:type", ok: true},
		{name: "custom prefix", term: rdf.IRI("http://example.org/A"), want: "ex:A", ok: true},
		{name: "longest namespace wins", term: rdf.IRI("http://example.org/vocab/p"), want: "exv:p", ok: true},
		{name: "slash in local part", term: rdf.IRI("http://example.org/a/b/c"), ok: false},
		{name: "empty local part", term: rdf.IRI("http://example.org/"), ok: false},
		{name: "unbound namespace", term: rdf.IRI("http://other.org/x"), ok: false},
		{name: "blank node", term: rdf.Blank("b0"), ok: false},
		{name: "literal", term: rdf.Literal("http://example.org/A"), ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ns.Compact(tc.term)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNamespaces_Expand(t *testing.T) {
	ns := rdf.DefaultNamespaces()

	got, ok := ns.Expand("skos:Concept")
	require.True(t, ok)
	assert.Equal(t, rdf.NamespaceSKOS+"Concept", got)

	_, ok = ns.Expand("nope:x")
	assert.False(t, ok)
}

func TestNamespaces_BindRejectsInvalid(t *testing.T) {
	ns := rdf.NewNamespaces()
	assert.Error(t, ns.Bind("a:b", "http://x/"))
	assert.Error(t, ns.Bind("a", ""))

	_, ok := ns.Expand("a:x")
	assert.False(t, ok)
}

func TestTerm_StringForm(t *testing.T) {
	assert.Equal(t, "b0", rdf.Blank("_:b0").String())
	assert.Equal(t, "42", rdf.TypedLiteral("42", rdf.NamespaceXSD+"integer").String())
	assert.True(t, rdf.Blank("b").IsResource())
	assert.False(t, rdf.Literal("x").IsResource())
}
