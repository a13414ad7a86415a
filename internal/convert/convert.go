// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF files into DOCX documents and back through
// pluggable external backends, one file at a time or for a whole directory.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/officekit/internal/selector"
	"github.com/pdiddy/officekit/pkg/types"
)

// Converter writes the converted form of src to dst. Backends (LibreOffice,
// container images) implement this interface.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// Direction describes one conversion: which files it reads and what
// extension its output gets.
type Direction struct {
	Action    types.Action
	SourceExt string
	TargetExt string
}

var (
	PdfToDocx = Direction{Action: types.ActionPdfToDocx, SourceExt: ".pdf", TargetExt: ".docx"}
	DocxToPdf = Direction{Action: types.ActionDocxToPdf, SourceExt: ".docx", TargetExt: ".pdf"}
)

// OutputPath replaces the extension of src with ext. A name without an
// extension (including dotfiles such as ".profile") gets ext appended.
func OutputPath(src, ext string) string {
	base := filepath.Base(src)
	old := filepath.Ext(base)
	if old == base {
		old = ""
	}
	return strings.TrimSuffix(src, old) + ext
}

// Options configures an Engine. Zero values are usable.
type Options struct {
	// Out receives one status line per file and a batch summary.
	Out io.Writer

	Logger   *log.Logger
	Recorder types.Recorder

	// KeepGoing continues a batch past failed files instead of stopping at
	// the first one.
	KeepGoing bool

	// Preflight opens PDF inputs before conversion. Only used for PdfToDocx.
	Preflight bool
}

// Engine runs a Converter over single files or directories.
type Engine struct {
	conv Converter
	dir  Direction
	opts Options
}

// NewEngine returns an Engine converting in direction d with conv.
func NewEngine(conv Converter, d Direction, opts Options) *Engine {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{conv: conv, dir: d, opts: opts}
}

// Direction returns the conversion direction.
func (e *Engine) Direction() Direction {
	return e.dir
}

// ConvertFile converts src and returns the output path, which is src with
// its extension replaced. Errors from the backend wrap types.ErrConversion.
func (e *Engine) ConvertFile(ctx context.Context, src string) (string, error) {
	dst := OutputPath(src, e.dir.TargetExt)
	err := e.convert(ctx, src, dst)
	if recErr := types.RecordOutcome(ctx, e.opts.Recorder, e.dir.Action, src, dst, err); recErr != nil {
		e.opts.Logger.Warn("journal write failed", "err", recErr)
	}
	if err != nil {
		fmt.Fprintf(e.opts.Out, "failed:    %s (%v)\n", src, err)
		return "", err
	}
	fmt.Fprintf(e.opts.Out, "converted: %s -> %s\n", src, dst)
	return dst, nil
}

func (e *Engine) convert(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrInvalidPath, src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", types.ErrInvalidPath, src)
	}

	if e.opts.Preflight && e.dir.SourceExt == ".pdf" {
		pages, err := InspectPDF(src)
		switch {
		case errors.Is(err, types.ErrConversion):
			// The parser knows less of the format than the converters do.
			e.opts.Logger.Warn("pdf preflight failed, converting anyway", "file", src, "err", err)
		case err != nil:
			return err
		default:
			e.opts.Logger.Debug("pdf preflight", "file", src, "pages", pages)
		}
	}

	e.opts.Logger.Debug("converting", "src", src, "dst", dst)
	if err := e.conv.Convert(ctx, src, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", types.ErrConversion, src, err)
	}
	return nil
}

// ConvertDir converts every regular file directly under dir whose name ends
// in the source extension. By default the first failure stops the batch
// and is returned; with KeepGoing every file is attempted and an error
// summarising the failure count is returned at the end.
func (e *Engine) ConvertDir(ctx context.Context, dir string) (types.BatchResult, error) {
	var result types.BatchResult

	files, err := selector.Select(dir, types.ModeExtension, strings.TrimPrefix(e.dir.SourceExt, "."))
	if err != nil {
		return result, err
	}
	e.opts.Logger.Debug("batch conversion", "dir", dir, "files", len(files), "action", e.dir.Action)

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dst, err := e.ConvertFile(ctx, src)
		if err != nil {
			result.Add(types.StatusFailed, "")
			if !e.opts.KeepGoing {
				return result, err
			}
			continue
		}
		result.Add(types.StatusDone, dst)
	}

	fmt.Fprintf(e.opts.Out, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Done, result.Failed, result.Total())
	if result.HasFailures() {
		return result, fmt.Errorf("%w: %d file(s) failed in %s", types.ErrConversion, result.Failed, dir)
	}
	return result, nil
}
