package models

// Reserved document keys injected by expansion.
const (
	IDKey    = "@id"
	LabelKey = "@label"
)

// Document is the nested form of one node: its flattened properties, the
// reserved @id and @label keys, and child documents keyed by edge label.
type Document map[string]any

// Merge returns a new document holding left's entries overlaid by right's.
// Neither input is modified.
func Merge(left, right map[string]any) Document {
	out := make(Document, len(left)+len(right))
	for k, v := range left {
		out[k] = v
	}

	for k, v := range right {
		out[k] = v
	}

	return out
}
