// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector expands a directory and a matching rule into the list of
// files a batch operation applies to. Only the top level of the directory is
// listed and only regular files are returned.
package selector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/pdiddy/officekit/pkg/types"
)

// Matcher reports whether a bare file name is selected.
type Matcher func(name string) bool

// NewMatcher builds the name test for mode and pattern.
func NewMatcher(mode types.SelectionMode, pattern string) (Matcher, error) {
	switch mode {
	case types.ModeExtension:
		g, err := glob.Compile("*." + glob.QuoteMeta(pattern))
		if err != nil {
			return nil, fmt.Errorf("compiling extension pattern %q: %w", pattern, err)
		}
		return g.Match, nil
	case types.ModeStartsWith:
		return func(name string) bool { return strings.HasPrefix(name, pattern) }, nil
	case types.ModeEndsWith:
		return func(name string) bool { return strings.HasSuffix(name, pattern) }, nil
	case types.ModeContains:
		return func(name string) bool { return strings.Contains(name, pattern) }, nil
	case types.ModeAll:
		exts := SplitExtensions(pattern)
		if len(exts) == 0 {
			return func(string) bool { return true }, nil
		}
		quoted := make([]string, len(exts))
		for i, e := range exts {
			quoted[i] = glob.QuoteMeta(e)
		}
		g, err := glob.Compile("*.{" + strings.Join(quoted, ",") + "}")
		if err != nil {
			return nil, fmt.Errorf("compiling extension list %q: %w", pattern, err)
		}
		return g.Match, nil
	}
	return nil, fmt.Errorf("%w: unknown selection mode %q", types.ErrInvalidChoice, mode)
}

// SplitExtensions parses a comma-separated extension list such as
// "jpg, .jpeg,png". Leading dots and blanks are dropped.
func SplitExtensions(pattern string) []string {
	var exts []string
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), ".")
		if part != "" {
			exts = append(exts, part)
		}
	}
	return exts
}

// Select lists dir and returns the regular files matched by mode and pattern,
// joined with dir and sorted by name. An empty result is not an error.
func Select(dir string, mode types.SelectionMode, pattern string) (types.FileList, error) {
	match, err := NewMatcher(mode, pattern)
	if err != nil {
		return nil, err
	}

	if err := CheckDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	files := types.FileList{}
	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegular(path, entry) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// SelectSpec is Select driven by a SelectionSpec.
func SelectSpec(spec types.SelectionSpec) (types.FileList, error) {
	return Select(spec.Dir, spec.Mode, spec.Pattern)
}

// CheckDir returns an error wrapping ErrInvalidPath unless dir exists and is
// a directory.
func CheckDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty directory path", types.ErrInvalidPath)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", types.ErrInvalidPath, dir)
		}
		return fmt.Errorf("%w: %s: %v", types.ErrInvalidPath, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", types.ErrInvalidPath, dir)
	}
	return nil
}

// isRegular follows symlinks so a link to a file counts as a file.
func isRegular(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
