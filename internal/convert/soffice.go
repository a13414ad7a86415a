// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandRunner abstracts process execution for testing.
type commandRunner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// SofficeConverter converts documents with LibreOffice in headless mode.
// LibreOffice always names its output after the input file inside --outdir;
// the converter renames it when dst asks for a different name.
type SofficeConverter struct {
	bin      string
	infilter string
	format   string
	ext      string
	run      commandRunner
}

// NewSofficeConverter returns a LibreOffice backend for direction d. bin is
// the soffice executable; it must be on PATH or an absolute path.
func NewSofficeConverter(bin string, d Direction) (*SofficeConverter, error) {
	return newSofficeConverter(bin, d, osRunner{})
}

func newSofficeConverter(bin string, d Direction, run commandRunner) (*SofficeConverter, error) {
	if bin == "" {
		bin = "soffice"
	}
	if _, err := run.LookPath(bin); err != nil {
		return nil, fmt.Errorf("LibreOffice binary %s not found: %w", bin, err)
	}
	c := &SofficeConverter{bin: bin, ext: d.TargetExt, run: run}
	switch d.TargetExt {
	case ".docx":
		c.infilter = "writer_pdf_import"
		c.format = "docx:MS Word 2007 XML"
	case ".pdf":
		c.format = "pdf:writer_pdf_Export"
	default:
		return nil, fmt.Errorf("soffice backend cannot produce %s files", d.TargetExt)
	}
	return c, nil
}

// Args returns the soffice command line for converting src into outDir.
func (c *SofficeConverter) Args(src, outDir string) []string {
	args := []string{"--headless", "--norestore", "--nolockcheck"}
	if c.infilter != "" {
		args = append(args, "--infilter="+c.infilter)
	}
	return append(args, "--convert-to", c.format, "--outdir", outDir, src)
}

// Convert runs soffice and moves its output to dst.
func (c *SofficeConverter) Convert(ctx context.Context, src, dst string) error {
	outDir := filepath.Dir(dst)
	out, err := c.run.Run(ctx, c.bin, c.Args(src, outDir)...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.bin, err, msg)
		}
		return fmt.Errorf("%s: %w", c.bin, err)
	}

	produced := OutputPath(filepath.Join(outDir, filepath.Base(src)), c.ext)
	if _, err := os.Stat(produced); err != nil {
		// soffice exits 0 when a filter rejects the input.
		return fmt.Errorf("%s produced no output for %s: %s", c.bin, src, strings.TrimSpace(string(out)))
	}
	if produced != dst {
		if err := os.Rename(produced, dst); err != nil {
			return fmt.Errorf("moving %s to %s: %w", produced, dst, err)
		}
	}
	return nil
}
