package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/ptedit/internal/config"
	"github.com/dshills/ptedit/internal/document"
	"github.com/dshills/ptedit/internal/logging"
)

// app carries state shared by every command of one invocation.
type app struct {
	debug      bool
	configPath string

	cfg    *config.Config
	logger *log.Logger
}

// setup loads configuration and configures logging.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Log.Level
	if a.debug {
		level = "debug"
	}
	logging.SetLevel(level)

	a.cfg = cfg
	a.logger = logging.Default()
	a.logger.Debug("config loaded", logging.FieldPath, a.configPath)
	return nil
}

// open loads path with the configured engine and save settings.
func (a *app) open(ctx context.Context, path string) (*document.Document, error) {
	return document.Open(ctx, path,
		document.WithBufferOptions(a.cfg.BufferOptions()...),
		document.WithBackup(a.cfg.Save.Backup),
		document.WithFileMode(a.cfg.Mode()),
		document.WithLogger(a.logger),
	)
}

// outputFlags selects where an edited document goes.
type outputFlags struct {
	output  string
	inPlace bool
}

func (o *outputFlags) validate() error {
	if o.output != "" && o.inPlace {
		return errOutputConflict
	}
	return nil
}

// emit writes doc to the selected destination: stdout, another file, or the
// document's own file.
func (o *outputFlags) emit(ctx context.Context, doc *document.Document, stdout io.Writer) error {
	switch {
	case o.inPlace:
		return doc.Save(ctx)
	case o.output != "":
		return doc.Export(ctx, o.output)
	default:
		_, err := doc.Buffer().WriteTo(stdout)
		return err
	}
}

var errOutputConflict = errors.New("--output and --in-place are mutually exclusive")

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the result to this file")
	cmd.Flags().BoolVarP(&o.inPlace, "in-place", "i", false, "write the result back to FILE")
}
