package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// parseRef turns a command argument into a validated reference.
func parseRef(s string) (models.Reference, error) {
	ref := models.ParseReference(s)
	if err := ref.Validate(); err != nil {
		return models.Reference{}, err
	}

	return ref, nil
}

// expandIRI rewrites a prefixed name such as "ex:A" to the full IRI when the
// prefix is bound. Absolute IRIs and unbound prefixes pass through.
func expandIRI(ns *rdf.Namespaces, s string) string {
	if s == "" || strings.Contains(s, "://") {
		return s
	}

	if full, ok := ns.Expand(s); ok {
		return full
	}

	return s
}

// expandRef applies expandIRI to external-identifier references.
func expandRef(ns *rdf.Namespaces, ref models.Reference) models.Reference {
	if ref.Kind != models.RefExternalID {
		return ref
	}

	return models.ExternalID(expandIRI(ns, ref.Value))
}

type resolveOutput struct {
	Node       *models.Node   `json:"node"`
	Properties map[string]any `json:"properties"`
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <ref>",
		Short: "Resolve a reference (iri:, id:, label: or a bare IRI/label) to a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			node, err := a.session.Resolve(ctx, expandRef(a.ns, ref))
			if err != nil {
				return err
			}

			if node == nil {
				return fmt.Errorf("%w: no node matches %s", models.ErrNodeNotFound, ref)
			}

			props, err := a.session.Project(ctx, node)
			if err != nil {
				return err
			}

			return output(cmd.OutOrStdout(), resolveOutput{Node: node, Properties: props}, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\n\n", node.Label, node.ID)
				formatTable(w, []string{"KEY", "VALUE"}, propertyRows(props))
			})
		},
	}
}

func newTreeCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree <ref>",
		Short: "Print the breadth-first traversal tree rooted at a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			tree, err := a.session.TraversalTree(ctx, expandRef(a.ns, ref), depth)
			if err != nil {
				return err
			}

			return output(cmd.OutOrStdout(), tree, func(w io.Writer) { writeTree(w, tree, 0) })
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Max traversal depth (0 uses MAX_TRAVERSAL_DEPTH)")

	return cmd
}

func newExpandCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "expand <ref>",
		Short: "Expand the traversal tree rooted at a node into nested documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			docs, err := a.session.ExpandFrom(ctx, expandRef(a.ns, ref), depth)
			if err != nil {
				return err
			}

			return formatJSON(cmd.OutOrStdout(), docs)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Max traversal depth (0 uses MAX_TRAVERSAL_DEPTH)")

	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <type-ref>",
		Short: "List the instances of a type node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			nodes, err := a.session.NodesOfType(ctx, expandRef(a.ns, ref))
			if err != nil {
				return err
			}

			return output(cmd.OutOrStdout(), nodes, func(w io.Writer) {
				formatTable(w, []string{"ID", "LABEL", "IRI"}, nodeRows(nodes))
			})
		},
	}
}

func newEdgesCmd() *cobra.Command {
	var source, target string

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List edges, optionally filtered by endpoint IRIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			edges, err := a.session.Edges(ctx, expandIRI(a.ns, source), expandIRI(a.ns, target))
			if err != nil {
				return err
			}

			return output(cmd.OutOrStdout(), edges, func(w io.Writer) {
				formatTable(w, []string{"ID", "SOURCE", "LABEL", "TARGET"}, edgeRows(edges))
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source node IRI or prefixed name")
	cmd.Flags().StringVar(&target, "target", "", "Target node IRI or prefixed name")

	return cmd
}
