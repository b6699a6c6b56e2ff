package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/ptedit/internal/script"
)

func newRunCommand(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "run SCRIPT FILE",
		Short: "Run a Lua script against a file",
		Long: `Run a Lua script against FILE.

The script edits the document through the global doc table:

  doc.size()  doc.get(i)  doc.insert(i, s)  doc.delete(i [, n])  doc.text()

Indices are zero-based byte offsets. log(msg) writes to the log.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			doc, err := a.open(ctx, args[1])
			if err != nil {
				return err
			}
			defer doc.Close()

			runner := script.NewRunner(script.WithLogger(a.logger), script.WithTimeout(a.cfg.ScriptTimeout()))
			if err := runner.RunFile(ctx, doc.Buffer(), args[0]); err != nil {
				return err
			}

			return out.emit(ctx, doc, cmd.OutOrStdout())
		},
	}

	out.register(cmd)

	return cmd
}
