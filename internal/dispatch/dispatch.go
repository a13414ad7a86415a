// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch maps a selected Action to its handler. It serves both the
// one-shot flag path and the interactive menu loop; all relative paths are
// resolved against an explicit session rather than the process directory.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/officekit/internal/compress"
	"github.com/pdiddy/officekit/internal/convert"
	"github.com/pdiddy/officekit/internal/dirlock"
	"github.com/pdiddy/officekit/internal/purge"
	"github.com/pdiddy/officekit/internal/session"
	"github.com/pdiddy/officekit/pkg/types"
)

// All is the path value that selects batch mode.
const All = "all"

// ErrExit is returned by Dispatch for ActionExit.
var ErrExit = errors.New("exit requested")

// Request carries the parameters of one action.
type Request struct {
	Action types.Action

	// Path is a single file, a directory (ChangeDirectory) or All.
	Path string

	// WorkDir is the directory processed when Path is All.
	WorkDir string

	// Quality is the image quality, passed to the encoder as given. Nil
	// means the configured quality.
	Quality *int

	// Selection drives DeleteFiles.
	Selection types.SelectionSpec
}

// ConverterFactory builds the conversion backend for one direction. It is
// called once per action so a missing tool only fails the action using it.
type ConverterFactory func(ctx context.Context, d convert.Direction) (convert.Converter, error)

// Options configures a Dispatcher.
type Options struct {
	Config types.Config

	Out      io.Writer
	Logger   *log.Logger
	Recorder types.Recorder

	// Locker serialises batch operations per directory. Nil disables locking.
	Locker *dirlock.Locker

	// NewConverter defaults to convert.NewConverter with Config.Conversion.
	NewConverter ConverterFactory

	// DryRun makes DeleteFiles list its selection without removing files.
	DryRun bool
}

// Dispatcher executes actions against a session.
type Dispatcher struct {
	sess *session.Session
	opts Options
}

// New returns a Dispatcher bound to sess.
func New(sess *session.Session, opts Options) *Dispatcher {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewConverter == nil {
		cfg := opts.Config.Conversion
		opts.NewConverter = func(ctx context.Context, d convert.Direction) (convert.Converter, error) {
			return convert.NewConverter(ctx, cfg, d)
		}
	}
	return &Dispatcher{sess: sess, opts: opts}
}

// Session returns the session the dispatcher resolves paths against.
func (d *Dispatcher) Session() *session.Session {
	return d.sess
}

// Dispatch runs req to completion. ActionExit returns ErrExit.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	d.opts.Logger.Debug("dispatch", "action", req.Action, "path", req.Path, "workdir", req.WorkDir)

	switch req.Action {
	case types.ActionChangeDirectory:
		return d.changeDirectory(req)
	case types.ActionPdfToDocx:
		return d.convert(ctx, convert.PdfToDocx, req)
	case types.ActionDocxToPdf:
		return d.convert(ctx, convert.DocxToPdf, req)
	case types.ActionCompressImages:
		return d.compress(ctx, req)
	case types.ActionDeleteFiles:
		return d.delete(ctx, req)
	case types.ActionExit:
		fmt.Fprintln(d.opts.Out, "Goodbye!")
		return ErrExit
	}
	return fmt.Errorf("%w: unknown action %d", types.ErrInvalidChoice, int(req.Action))
}

func (d *Dispatcher) changeDirectory(req Request) error {
	if req.Path == "" {
		return fmt.Errorf("%w: directory path", types.ErrMissingArgument)
	}
	if err := d.sess.ChangeDir(req.Path); err != nil {
		return err
	}
	fmt.Fprintf(d.opts.Out, "Current directory: %s\n", d.sess.Dir())
	return nil
}

// batchDir resolves the WorkDir of an All request.
func (d *Dispatcher) batchDir(req Request, flag string) (string, error) {
	if req.WorkDir == "" {
		return "", fmt.Errorf("%w: --workdir is required with --%s all", types.ErrMissingArgument, flag)
	}
	return d.sess.Resolve(req.WorkDir), nil
}

func (d *Dispatcher) withLock(ctx context.Context, dir string, fn func() error) error {
	if d.opts.Locker == nil {
		return fn()
	}
	return d.opts.Locker.With(ctx, dir, fn)
}

func (d *Dispatcher) convert(ctx context.Context, dir convert.Direction, req Request) error {
	if req.Path == "" {
		return fmt.Errorf("%w: path to a %s file", types.ErrMissingArgument, dir.SourceExt)
	}

	var workDir string
	if req.Path == All {
		var err error
		if workDir, err = d.batchDir(req, dir.Action.String()); err != nil {
			return err
		}
	}

	conv, err := d.opts.NewConverter(ctx, dir)
	if err != nil {
		return err
	}
	engine := convert.NewEngine(conv, dir, convert.Options{
		Out:       d.opts.Out,
		Logger:    d.opts.Logger,
		Recorder:  d.opts.Recorder,
		KeepGoing: d.opts.Config.KeepGoing,
		Preflight: d.opts.Config.Conversion.Preflight,
	})

	if req.Path != All {
		_, err := engine.ConvertFile(ctx, d.sess.Resolve(req.Path))
		return err
	}
	return d.withLock(ctx, workDir, func() error {
		_, err := engine.ConvertDir(ctx, workDir)
		return err
	})
}

func (d *Dispatcher) compress(ctx context.Context, req Request) error {
	if req.Path == "" {
		return fmt.Errorf("%w: path to an image", types.ErrMissingArgument)
	}
	quality := d.opts.Config.Compression.Quality
	if req.Quality != nil {
		quality = *req.Quality
	}
	c := compress.New(compress.Options{
		Quality:   quality,
		MaxWidth:  d.opts.Config.Compression.MaxWidth,
		Out:       d.opts.Out,
		Logger:    d.opts.Logger,
		Recorder:  d.opts.Recorder,
		KeepGoing: d.opts.Config.KeepGoing,
	})

	if req.Path != All {
		_, err := c.CompressFile(ctx, d.sess.Resolve(req.Path), d.sess.Dir())
		return err
	}
	workDir, err := d.batchDir(req, "compress-images")
	if err != nil {
		return err
	}
	return d.withLock(ctx, workDir, func() error {
		_, err := c.CompressDir(ctx, workDir)
		return err
	})
}

func (d *Dispatcher) delete(ctx context.Context, req Request) error {
	spec := req.Selection
	if spec.Dir != "" {
		spec.Dir = d.sess.Resolve(spec.Dir)
	}
	if err := purge.Validate(spec); err != nil {
		return err
	}
	opts := purge.Options{
		Out:      d.opts.Out,
		Logger:   d.opts.Logger,
		Recorder: d.opts.Recorder,
		DryRun:   d.opts.DryRun,
	}
	return d.withLock(ctx, spec.Dir, func() error {
		_, err := purge.Delete(ctx, spec, opts)
		return err
	})
}
