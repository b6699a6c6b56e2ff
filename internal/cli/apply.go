package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/ptedit/internal/document"
	"github.com/dshills/ptedit/internal/journal"
	"github.com/dshills/ptedit/internal/logging"
)

var errFollowInPlace = errors.New("--follow cannot be combined with --in-place")

func newApplyCommand(a *app) *cobra.Command {
	var out outputFlags
	var follow bool

	cmd := &cobra.Command{
		Use:   "apply FILE JOURNAL",
		Short: "Replay a YAML edit journal against a file",
		Long: `Replay the insert and delete operations of a YAML journal against FILE.

The journal format is:

  ops:
    - insert: {at: 6, text: "New "}
    - delete: {at: 0, count: 1}

With --follow the journal is replayed again every time FILE changes on disk,
until the command is interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			if follow && out.inPlace {
				return errFollowInPlace
			}

			j, err := journal.Load(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			doc, err := a.replay(ctx, args[0], j)
			if err != nil {
				return err
			}
			defer doc.Close()

			var events <-chan document.ChangeEvent
			if follow {
				if events, err = doc.Watch(ctx); err != nil {
					return err
				}
				a.logger.Info("watching", logging.FieldPath, doc.Path())
			}

			if err := out.emit(ctx, doc, cmd.OutOrStdout()); err != nil {
				return err
			}
			if !follow {
				return nil
			}
			return a.follow(ctx, events, args[0], j, &out, cmd.OutOrStdout())
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&follow, "follow", false, "replay again whenever FILE changes")

	return cmd
}

// replay loads path and applies j to it. The returned document is open;
// the caller closes it.
func (a *app) replay(ctx context.Context, path string, j *journal.Journal) (*document.Document, error) {
	doc, err := a.open(ctx, path)
	if err != nil {
		return nil, err
	}

	res, err := j.Apply(logging.WithLogger(ctx, a.logger), doc.Buffer())
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("applied journal", logging.FieldPath, doc.Path(), logging.FieldOps, res.Applied,
		"inserted", res.Inserted, "deleted", res.Deleted)
	return doc, nil
}

// follow replays j each time a change event arrives, until the events
// channel closes on cancellation.
func (a *app) follow(ctx context.Context, events <-chan document.ChangeEvent, path string, j *journal.Journal, out *outputFlags, stdout io.Writer) error {
	for ev := range events {
		if ev.Kind == document.ChangeRemoved {
			a.logger.Warn("file removed, waiting", logging.FieldPath, ev.Path)
			continue
		}
		if err := a.replayAndEmit(ctx, path, j, out, stdout); err != nil {
			a.logger.Error("replay failed", logging.FieldPath, ev.Path, logging.FieldError, err)
		}
	}
	return nil
}

func (a *app) replayAndEmit(ctx context.Context, path string, j *journal.Journal, out *outputFlags, stdout io.Writer) error {
	doc, err := a.replay(ctx, path, j)
	if err != nil {
		return err
	}
	defer doc.Close()
	return out.emit(ctx, doc, stdout)
}
