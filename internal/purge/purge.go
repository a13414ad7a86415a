// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package purge removes the files a SelectionSpec selects.
package purge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/officekit/internal/selector"
	"github.com/pdiddy/officekit/pkg/types"
)

// Options configures Delete.
type Options struct {
	Out      io.Writer
	Logger   *log.Logger
	Recorder types.Recorder

	// DryRun lists the selection without removing anything.
	DryRun bool
}

// Validate checks that spec is complete enough to delete with. ModeAll and
// empty patterns are refused so a typo cannot empty a directory.
func Validate(spec types.SelectionSpec) error {
	if spec.Dir == "" {
		return fmt.Errorf("%w: delete directory", types.ErrMissingArgument)
	}
	if spec.Mode == "" {
		return fmt.Errorf("%w: delete mode", types.ErrMissingArgument)
	}
	if spec.Pattern == "" {
		return fmt.Errorf("%w: delete pattern", types.ErrMissingArgument)
	}
	for _, m := range types.DeleteModes {
		if spec.Mode == m {
			return nil
		}
	}
	return fmt.Errorf("%w: %q cannot be used for deletion", types.ErrInvalidChoice, spec.Mode)
}

// Delete selects files per spec and removes them in order. Removal is not
// atomic: if a listed file has vanished by the time it is reached, Delete
// stops with an error wrapping types.ErrFileNotFound and the files removed
// before it stay removed.
func Delete(ctx context.Context, spec types.SelectionSpec, opts Options) (types.BatchResult, error) {
	var result types.BatchResult
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	if err := Validate(spec); err != nil {
		return result, err
	}
	files, err := selector.SelectSpec(spec)
	if err != nil {
		return result, err
	}
	opts.Logger.Debug("delete selection", "dir", spec.Dir, "mode", spec.Mode, "pattern", spec.Pattern, "files", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if opts.DryRun {
			fmt.Fprintf(opts.Out, "would remove: %s\n", path)
			result.Add(types.StatusSkipped, "")
			continue
		}

		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
		} else if err != nil {
			err = fmt.Errorf("removing %s: %w", path, err)
		}
		if recErr := types.RecordOutcome(ctx, opts.Recorder, types.ActionDeleteFiles, path, "", err); recErr != nil {
			opts.Logger.Warn("journal write failed", "err", recErr)
		}
		if err != nil {
			fmt.Fprintf(opts.Out, "failed:  %s (%v)\n", path, err)
			result.Add(types.StatusFailed, "")
			return result, err
		}
		fmt.Fprintf(opts.Out, "removed: %s\n", path)
		result.Add(types.StatusDone, path)
	}

	if opts.DryRun {
		fmt.Fprintf(opts.Out, "\n%d file(s) would be removed from %s\n", result.Skipped, spec.Dir)
	} else {
		fmt.Fprintf(opts.Out, "\n%d file(s) removed from %s\n", result.Done, spec.Dir)
	}
	return result, nil
}
