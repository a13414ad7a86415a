// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"fmt"
	"slices"

	"github.com/pdiddy/officekit/pkg/types"
)

// Flags holds the one-shot action flags of a single invocation.
type Flags struct {
	PdfToDocx      string
	DocxToPdf      string
	CompressImages string
	Quality        int
	WorkDir        string

	Delete        bool
	DeleteMode    string
	DeletePattern string
	DeleteDir     string
}

// Empty reports whether no action flag is set.
func (f Flags) Empty() bool {
	return f.PdfToDocx == "" && f.DocxToPdf == "" && f.CompressImages == "" && !f.Delete
}

// Plan validates f and returns the requests to run, in the order
// pdf2docx, docx2pdf, compress-images, delete. Every companion flag is
// checked before any request is returned, so a bad invocation does no work.
func (f Flags) Plan() ([]Request, error) {
	var reqs []Request

	batch := func(action types.Action, flag, path string) error {
		if path == "" {
			return nil
		}
		req := Request{Action: action, Path: path}
		if action == types.ActionCompressImages {
			q := f.Quality
			req.Quality = &q
		}
		if path == All {
			if f.WorkDir == "" {
				return fmt.Errorf("%w: --workdir is required with --%s all", types.ErrMissingArgument, flag)
			}
			req.WorkDir = f.WorkDir
		}
		reqs = append(reqs, req)
		return nil
	}

	if err := batch(types.ActionPdfToDocx, "pdf2docx", f.PdfToDocx); err != nil {
		return nil, err
	}
	if err := batch(types.ActionDocxToPdf, "docx2pdf", f.DocxToPdf); err != nil {
		return nil, err
	}
	if err := batch(types.ActionCompressImages, "compress-images", f.CompressImages); err != nil {
		return nil, err
	}

	if f.Delete {
		var missing []string
		if f.DeleteMode == "" {
			missing = append(missing, "--delete-mode")
		}
		if f.DeletePattern == "" {
			missing = append(missing, "--delete-pattern")
		}
		if f.DeleteDir == "" {
			missing = append(missing, "--delete-dir")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: --delete requires %v", types.ErrMissingArgument, missing)
		}
		mode, err := types.ParseMode(f.DeleteMode)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(types.DeleteModes, mode) {
			return nil, fmt.Errorf("%w: --delete-mode %q", types.ErrInvalidChoice, f.DeleteMode)
		}
		reqs = append(reqs, Request{
			Action:    types.ActionDeleteFiles,
			Selection: types.SelectionSpec{Dir: f.DeleteDir, Mode: mode, Pattern: f.DeletePattern},
		})
	}
	return reqs, nil
}
