package cli

import (
	"github.com/spf13/cobra"
)

func newCatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file through the piece table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			_, err = doc.Buffer().WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
