// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/officekit/internal/container"
)

// ContainerConverter pipes a document through a conversion image on docker
// or podman. The image reads the source on stdin and writes the converted
// document on stdout.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter verifies that image exists in rt before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		return nil, fmt.Errorf("no conversion image configured for %s", rt.Name())
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert writes the container output to a temporary file beside dst and
// renames it into place, so a failed run never leaves a truncated dst.
func (c *ContainerConverter) Convert(ctx context.Context, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".officekit-*"+filepath.Ext(dst))
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := c.runtime.Run(ctx, c.image, in, tmp); err != nil {
		tmp.Close()
		return err
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return fmt.Errorf("stat %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s produced empty output for %s", c.image, src)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("moving output to %s: %w", dst, err)
	}
	return nil
}
