package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/persistorai/rdf2graph/internal/models"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			width := 0
			if i < len(widths) {
				width = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", width, cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)

	seps := make([]string, len(headers))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	printRow(seps)

	for _, row := range rows {
		printRow(row)
	}
}

// output writes v as JSON, or as a table when --format=table and the caller
// supplied a table renderer.
func output(w io.Writer, v any, table func(io.Writer)) error {
	if flagFmt == "table" && table != nil {
		table(w)
		return nil
	}

	return formatJSON(w, v)
}

func nodeRows(nodes []models.Node) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, n.Label, n.IRI()})
	}

	return rows
}

func edgeRows(edges []models.Edge) [][]string {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.ID, e.Source, e.Label, e.Target})
	}

	return rows
}

// propertyRows lists a projected document one value per row, keys sorted.
func propertyRows(props map[string]any) [][]string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var rows [][]string
	for _, k := range keys {
		switch v := props[k].(type) {
		case []string:
			for _, s := range v {
				rows = append(rows, []string{k, s})
			}
		default:
			rows = append(rows, []string{k, fmt.Sprint(v)})
		}
	}

	return rows
}

// writeTree renders a traversal tree as an indented outline.
func writeTree(w io.Writer, t *models.Tree, indent int) {
	if t == nil {
		return
	}

	pad := strings.Repeat("  ", indent)

	for _, e := range t.Entries {
		switch {
		case e.Key.IsNode():
			fmt.Fprintf(w, "%s%s (%s)\n", pad, e.Key.Node.Label, e.Key.Node.ID)
		case e.Key.IsEdge():
			fmt.Fprintf(w, "%s-[%s]->\n", pad, e.Key.Edge.Label)
		}

		writeTree(w, e.Value, indent+1)
	}
}
