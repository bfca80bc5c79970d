package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

func newLoadCmd() *cobra.Command {
	var clearFirst bool

	cmd := &cobra.Command{
		Use:   "load <file.nt>",
		Short: "Ingest an N-Triples file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if clearFirst {
				if err := a.session.Clear(ctx); err != nil {
					return err
				}
			}

			res, err := ingestFile(cmd, a, args[0])
			if res != nil {
				if outErr := output(cmd.OutOrStdout(), res, ingestTable(res)); outErr != nil {
					return outErr
				}
			}

			return err
		},
	}
	cmd.Flags().BoolVar(&clearFirst, "clear", false, "Erase the graph before loading")

	return cmd
}

// ingestFile streams path into the session. On failure the partial result
// is returned along with the error.
func ingestFile(cmd *cobra.Command, a *app, path string) (*models.IngestResult, error) {
	var r io.Reader = cmd.InOrStdin()

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		r = f
	}

	return a.session.Ingest(cmd.Context(), rdf.NewStream(r, a.ns))
}

func ingestTable(res *models.IngestResult) func(io.Writer) {
	return func(w io.Writer) {
		formatTable(w, []string{"STATEMENTS", "NODES CREATED", "NODES REUSED", "EDGES", "PROPERTIES"}, [][]string{{
			strconv.Itoa(res.Statements),
			strconv.Itoa(res.NodesCreated),
			strconv.Itoa(res.NodesReused),
			strconv.Itoa(res.EdgesCreated),
			strconv.Itoa(res.PropertiesSet),
		}})
	}
}
