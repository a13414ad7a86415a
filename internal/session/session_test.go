// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officekit/pkg/types"
)

func TestChangeDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	s, err := New(root)
	require.NoError(t, err)

	require.NoError(t, s.ChangeDir("docs"))
	assert.Equal(t, filepath.Join(root, "docs"), s.Dir())

	require.NoError(t, s.ChangeDir(".."))
	assert.Equal(t, root, s.Dir())

	tests := []string{"missing", "file.txt"}
	for _, p := range tests {
		err := s.ChangeDir(p)
		assert.ErrorIs(t, err, types.ErrInvalidPath, p)
		assert.Equal(t, root, s.Dir(), "session must not move on error")
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, root, s.Resolve(""))
	assert.Equal(t, filepath.Join(root, "a.pdf"), s.Resolve("a.pdf"))
	assert.Equal(t, "/abs/b.pdf", s.Resolve("/abs/x/../b.pdf"))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, types.ErrInvalidPath)
}
