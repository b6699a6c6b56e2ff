package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/ptedit/internal/journal"
)

func newStatCommand(a *app) *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "stat FILE",
		Short: "Show piece table statistics for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			if journalPath != "" {
				j, err := journal.Load(journalPath)
				if err != nil {
					return err
				}
				if _, err := j.Apply(ctx, doc.Buffer()); err != nil {
					return err
				}
			}

			buf := doc.Buffer()
			stats := buf.Stats()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "file:\t%s\n", doc.Path())
			fmt.Fprintf(w, "size:\t%d\n", stats.Size)
			fmt.Fprintf(w, "lines:\t%d\n", buf.LineCount())
			fmt.Fprintf(w, "pieces:\t%d\n", stats.Pieces)
			fmt.Fprintf(w, "original:\t%d\n", stats.OriginalLen)
			fmt.Fprintf(w, "appended:\t%d\n", stats.AppendedLen)
			fmt.Fprintf(w, "modified:\t%t\n", doc.IsModified())
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&journalPath, "journal", "j", "", "replay this journal before reporting")

	return cmd
}
