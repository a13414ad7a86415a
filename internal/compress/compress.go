// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compress re-encodes JPEG and PNG images to smaller files. The
// original is never modified; the result is written as compressed_<name>.
package compress

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imageorient"
	"github.com/nfnt/resize"

	"github.com/pdiddy/officekit/internal/selector"
	"github.com/pdiddy/officekit/pkg/types"
)

const (
	// OutputPrefix is prepended to the base name of every compressed file.
	OutputPrefix = "compressed_"

	// DefaultQuality is used when no quality is configured.
	DefaultQuality = 75

	// ImageExtensions is the selector pattern for batch compression.
	ImageExtensions = "jpg,jpeg,png"
)

// encoderFn writes img to out in one format.
type encoderFn func(out io.Writer, img image.Image, quality int) error

func encodeJPEG(out io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
}

// encodePNG ignores quality; PNG is lossless.
func encodePNG(out io.Writer, img image.Image, _ int) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(out, img)
}

func encoderFor(path string) (encoderFn, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return encodeJPEG, nil
	case ".png":
		return encodePNG, nil
	}
	return nil, fmt.Errorf("%w: unsupported image type %q", types.ErrConversion, filepath.Ext(path))
}

// OutputName returns the file name a compressed copy of src receives.
func OutputName(src string) string {
	return OutputPrefix + filepath.Base(src)
}

// Options configures a Compressor.
type Options struct {
	// Quality is passed to the JPEG encoder uninterpreted; the encoder
	// clamps it to [1,100].
	Quality int

	// MaxWidth downsizes wider images to this width when > 0.
	MaxWidth int

	Out       io.Writer
	Logger    *log.Logger
	Recorder  types.Recorder
	KeepGoing bool
}

// Compressor recompresses images.
type Compressor struct {
	opts Options
}

// New returns a Compressor. Quality is used as given, zero included;
// callers wanting the default pass DefaultQuality.
func New(opts Options) *Compressor {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Compressor{opts: opts}
}

// CompressFile writes a recompressed copy of src into outDir and returns
// its path.
func (c *Compressor) CompressFile(ctx context.Context, src, outDir string) (string, error) {
	dst := filepath.Join(outDir, OutputName(src))
	err := c.shrink(src, dst)
	if recErr := types.RecordOutcome(ctx, c.opts.Recorder, types.ActionCompressImages, src, dst, err); recErr != nil {
		c.opts.Logger.Warn("journal write failed", "err", recErr)
	}
	if err != nil {
		fmt.Fprintf(c.opts.Out, "failed:     %s (%v)\n", src, err)
		return "", err
	}
	fmt.Fprintf(c.opts.Out, "compressed: %s -> %s\n", src, dst)
	return dst, nil
}

func (c *Compressor) shrink(src, dst string) error {
	encode, err := encoderFor(dst)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrInvalidPath, src, err)
	}
	defer in.Close()

	img, format, err := imageorient.Decode(in)
	if err != nil {
		return fmt.Errorf("%w: decoding %s: %w", types.ErrConversion, src, err)
	}
	img = c.fit(img)
	c.opts.Logger.Debug("encoding image", "src", src, "format", format, "quality", c.opts.Quality,
		"size", img.Bounds().Size())

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := encode(out, img, c.opts.Quality); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: encoding %s: %w", types.ErrConversion, dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// fit downsizes img to MaxWidth, keeping the aspect ratio. It never scales up.
func (c *Compressor) fit(img image.Image) image.Image {
	if c.opts.MaxWidth <= 0 || img.Bounds().Dx() <= c.opts.MaxWidth {
		return img
	}
	return resize.Resize(uint(c.opts.MaxWidth), 0, img, resize.Lanczos3)
}

// CompressDir compresses every JPEG and PNG directly under dir, writing each
// result beside its source. Files that already carry the output prefix are
// skipped. The first failure stops the batch unless KeepGoing is set.
func (c *Compressor) CompressDir(ctx context.Context, dir string) (types.BatchResult, error) {
	var result types.BatchResult

	files, err := selector.Select(dir, types.ModeAll, ImageExtensions)
	if err != nil {
		return result, err
	}

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if strings.HasPrefix(filepath.Base(src), OutputPrefix) {
			fmt.Fprintf(c.opts.Out, "skipped:    %s (already compressed)\n", src)
			result.Add(types.StatusSkipped, "")
			continue
		}
		dst, err := c.CompressFile(ctx, src, dir)
		if err != nil {
			result.Add(types.StatusFailed, "")
			if !c.opts.KeepGoing {
				return result, err
			}
			continue
		}
		result.Add(types.StatusDone, dst)
	}

	fmt.Fprintf(c.opts.Out, "\nBatch summary: %d compressed, %d skipped, %d failed (total: %d)\n",
		result.Done, result.Skipped, result.Failed, result.Total())
	if result.HasFailures() {
		return result, fmt.Errorf("%w: %d image(s) failed in %s", types.ErrConversion, result.Failed, dir)
	}
	return result, nil
}
