// Package rdf provides the triple side of the mapping: terms, triples, a
// namespace table for prefix compaction, an in-memory triple set and a
// streaming N-Triples decoder.
package rdf

import (
	"iter"
	"strings"
)

// TermKind classifies a Term.
type TermKind int

// Term kinds.
const (
	KindIRI TermKind = iota + 1
	KindBlank
	KindLiteral
)

func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is an RDF term. Value holds the IRI, the blank node label (without
// the "_:" prefix) or the literal's lexical form.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term. A leading "_:" is stripped.
func Blank(id string) Term { return Term{Kind: KindBlank, Value: strings.TrimPrefix(id, "_:")} }

// Literal returns a plain literal.
func Literal(lex string) Term { return Term{Kind: KindLiteral, Value: lex} }

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(lex, datatype string) Term {
	return Term{Kind: KindLiteral, Value: lex, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(lex, lang string) Term { return Term{Kind: KindLiteral, Value: lex, Lang: lang} }

// IsResource reports whether the term denotes a graph node rather than a value.
func (t Term) IsResource() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// String returns the term's string form: the IRI, the bare blank label or the
// literal's lexical form.
func (t Term) String() string { return t.Value }

// NTriples returns the term in N-Triples syntax.
func (t Term) NTriples() string {
	switch t.Kind {
	case KindIRI:
		return "<" + escapeIRI(t.Value) + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := `"` + escapeLiteral(t.Value) + `"`
		switch {
		case t.Lang != "":
			s += "@" + t.Lang
		case t.Datatype != "":
			s += "^^<" + escapeIRI(t.Datatype) + ">"
		}

		return s
	default:
		return ""
	}
}

// Triple is a subject-predicate-object statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t Triple) String() string {
	return t.Subject.NTriples() + " " + t.Predicate.NTriples() + " " + t.Object.NTriples() + " ."
}

// Source yields statements and compacts terms to prefixed names.
type Source interface {
	// Triples yields each statement once. A non-nil error ends the sequence.
	Triples() iter.Seq2[Triple, error]
	// Compact returns the prefixed name of t when a bound namespace covers it.
	Compact(t Term) (string, bool)
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string { return literalEscaper.Replace(s) }

func escapeIRI(s string) string {
	if !strings.ContainsAny(s, "<>\"{}|^`\\ ") {
		return s
	}

	var b strings.Builder

	for _, r := range s {
		if strings.ContainsRune("<>\"{}|^`\\ ", r) {
			b.WriteString(`\u00`)
			b.WriteByte("0123456789ABCDEF"[r>>4])
			b.WriteByte("0123456789ABCDEF"[r&0xF])

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
