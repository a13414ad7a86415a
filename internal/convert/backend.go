// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"

	"github.com/pdiddy/officekit/internal/container"
	"github.com/pdiddy/officekit/pkg/types"
)

// NewConverter builds the backend selected in cfg for direction d.
func NewConverter(ctx context.Context, cfg types.ConversionConfig, d Direction) (Converter, error) {
	switch cfg.Backend {
	case types.BackendSoffice, "":
		return NewSofficeConverter(cfg.Soffice.Path, d)
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		image := cfg.Container.Pdf2DocxImage
		if d.TargetExt == ".pdf" {
			image = cfg.Container.Docx2PdfImage
		}
		return NewContainerConverter(ctx, rt, image)
	}
	return nil, fmt.Errorf("%w: unknown conversion backend %q (want %s or %s)",
		types.ErrInvalidChoice, cfg.Backend, types.BackendSoffice, types.BackendContainer)
}
