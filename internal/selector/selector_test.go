// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officekit/pkg/types"
)

// setupDir creates the named files (and a few directories) in a temp dir.
func setupDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func names(list types.FileList) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestSelect(t *testing.T) {
	files := []string{
		"report.tmp", "foo.txt", "foobar.log", "notes.TMP",
		"barfoo", "a.b.tmp", "tmp", "photo.jpg", "scan.jpeg", "icon.png", "doc[1].tmp",
	}

	tests := []struct {
		name    string
		mode    types.SelectionMode
		pattern string
		want    []string
	}{
		{
			name:    "extension is case sensitive and matches the last suffix",
			mode:    types.ModeExtension,
			pattern: "tmp",
			want:    []string{"a.b.tmp", "doc[1].tmp", "report.tmp"},
		},
		{
			name:    "extension pattern metacharacters are literal",
			mode:    types.ModeExtension,
			pattern: "t*",
			want:    []string{},
		},
		{
			name:    "startswith",
			mode:    types.ModeStartsWith,
			pattern: "foo",
			want:    []string{"foo.txt", "foobar.log"},
		},
		{
			name:    "endswith",
			mode:    types.ModeEndsWith,
			pattern: "foo",
			want:    []string{"barfoo"},
		},
		{
			name:    "contains",
			mode:    types.ModeContains,
			pattern: "foo",
			want:    []string{"barfoo", "foo.txt", "foobar.log"},
		},
		{
			name:    "all with extension list",
			mode:    types.ModeAll,
			pattern: "jpg,.jpeg, png",
			want:    []string{"icon.png", "photo.jpg", "scan.jpeg"},
		},
		{
			name:    "no matches returns empty list",
			mode:    types.ModeStartsWith,
			pattern: "zzz",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDir(t, files...)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "foo.dir"), 0o755))

			got, err := Select(dir, tt.mode, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			for _, p := range got {
				assert.Equal(t, dir, filepath.Dir(p))
			}
		})
	}
}

func TestSelectExcludesDirectories(t *testing.T) {
	dir := setupDir(t, "keep.tmp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cache.tmp"), 0o755))

	got, err := Select(dir, types.ModeExtension, "tmp")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.tmp"}, names(got))
}

func TestSelectDoesNotRecurse(t *testing.T) {
	dir := setupDir(t, "top.pdf")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.pdf"), []byte("x"), 0o644))

	got, err := Select(dir, types.ModeExtension, "pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"top.pdf"}, names(got))
}

func TestSelectFollowsFileSymlinks(t *testing.T) {
	dir := setupDir(t, "target.log")
	require.NoError(t, os.Symlink(filepath.Join(dir, "target.log"), filepath.Join(dir, "link.log")))
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(dir, "dirlink.log")))

	got, err := Select(dir, types.ModeExtension, "log")
	require.NoError(t, err)
	assert.Equal(t, []string{"link.log", "target.log"}, names(got))
}

func TestSelectInvalidDirectory(t *testing.T) {
	dir := setupDir(t, "file.txt")

	_, err := Select(filepath.Join(dir, "missing"), types.ModeContains, "x")
	assert.ErrorIs(t, err, types.ErrInvalidPath)

	_, err = Select(filepath.Join(dir, "file.txt"), types.ModeContains, "x")
	assert.ErrorIs(t, err, types.ErrInvalidPath)
}

func TestSelectUnknownMode(t *testing.T) {
	_, err := Select(t.TempDir(), types.SelectionMode("regex"), ".*")
	assert.ErrorIs(t, err, types.ErrInvalidChoice)
}

func TestSelectSpec(t *testing.T) {
	dir := setupDir(t, "a.pdf", "b.pdf", "c.txt")
	got, err := SelectSpec(types.SelectionSpec{Dir: dir, Mode: types.ModeExtension, Pattern: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(got))
}

func TestSplitExtensions(t *testing.T) {
	assert.Equal(t, []string{"jpg", "png"}, SplitExtensions(" .jpg,,png "))
	assert.Nil(t, SplitExtensions(""))
}
