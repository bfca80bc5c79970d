package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/rdf2graph/internal/config"
	"github.com/persistorai/rdf2graph/internal/dbpool"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

var (
	flagBackend     string
	flagDatabaseURL string
	flagNamespaces  string
	flagFmt         string
	flagLogLevel    string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("rdf2graph version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}

	return fmt.Sprintf("rdf2graph version %s", config.Version)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rdf2graph",
		Short:         "Map RDF triples onto a labeled property graph",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flagFmt {
			case "json", "table":
				return nil
			default:
				return fmt.Errorf("unknown --format %q (want json or table)", flagFmt)
			}
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend: postgres|memory (env: STORE_BACKEND)")
	root.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL URL (env: DATABASE_URL)")
	root.PersistentFlags().StringVar(&flagNamespaces, "namespaces", "", "YAML file of prefix: iri bindings (env: NAMESPACES_FILE)")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (env: LOG_LEVEL)")

	root.AddCommand(newLoadCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newExpandCmd())
	root.AddCommand(newTypesCmd())
	root.AddCommand(newEdgesCmd())
	root.AddCommand(newClearCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

// fatal prints err, plus setup hints for an unreachable database, and exits.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var connErr *dbpool.ConnectionError
	if errors.As(err, &connErr) {
		fmt.Fprintln(os.Stderr, "\nTo fix this:")
		for _, hint := range connErr.Remediation() {
			fmt.Fprintf(os.Stderr, "  - %s\n", hint)
		}
	}

	os.Exit(1)
}
