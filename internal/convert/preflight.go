// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"rsc.io/pdf"

	"github.com/pdiddy/officekit/pkg/types"
)

// InspectPDF opens path as a PDF and returns its page count. Files the
// parser rejects produce an error wrapping types.ErrConversion; the parser
// stops at PDF 1.7 and does not handle AES-256 encryption, so callers treat
// that error as a warning rather than proof the file is unusable.
func InspectPDF(path string) (pages int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	// rsc.io/pdf panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: %s is not a readable PDF: %v", types.ErrConversion, path, r)
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a readable PDF: %v", types.ErrConversion, path, err)
	}
	return r.NumPage(), nil
}
