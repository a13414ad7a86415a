// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the working directory that relative paths resolve
// against. It replaces changing the process directory with an explicit value
// passed to every operation.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/officekit/internal/selector"
)

// Session is the mutable per-run state: the current base directory.
type Session struct {
	dir string
}

// New returns a session rooted at dir, which must exist.
func New(dir string) (*Session, error) {
	s := &Session{}
	if err := s.ChangeDir(dir); err != nil {
		return nil, err
	}
	return s, nil
}

// FromWorkingDir returns a session rooted at the process working directory.
func FromWorkingDir() (*Session, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return New(wd)
}

// Dir returns the absolute base directory.
func (s *Session) Dir() string {
	return s.dir
}

// Resolve returns path unchanged when absolute, or joined with the session
// directory otherwise. An empty path resolves to the session directory.
func (s *Session) Resolve(path string) string {
	if path == "" {
		return s.dir
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.dir, path)
}

// ChangeDir moves the session to path, resolved against the current
// directory. The session is unchanged on error.
func (s *Session) ChangeDir(path string) error {
	target := path
	if s.dir != "" {
		target = s.Resolve(path)
	}
	if err := selector.CheckDir(target); err != nil {
		return err
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", target, err)
	}
	s.dir = abs
	return nil
}
