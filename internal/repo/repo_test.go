package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SierraSoftworks/git-tool-sub000/internal/identifier"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fq   string
		want Repo
	}{
		{"github.com:SierraSoftworks/git-tool", Repo{"github.com", "SierraSoftworks", "git-tool", "/p"}},
		{"dev.azure.com:org/project/repo", Repo{"dev.azure.com", "org/project", "repo", "/p"}},
	}

	for _, tt := range tests {
		t.Run(tt.fq, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.fq, "/p")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fq, got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, fq := range []string{"", "SierraSoftworks/git-tool", "github.com:git-tool"} {
		_, err := Parse(fq, "/p")
		assert.Error(t, err, fq)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	r := Repo{Service: "github.com", Namespace: "SierraSoftworks", Name: "git-tool", Path: "/dev/github.com/SierraSoftworks/git-tool"}
	assert.Equal(t, "SierraSoftworks/git-tool", r.FullName())
	assert.Equal(t, identifier.Identifier{Scope: "github.com", Path: "SierraSoftworks/git-tool"}, r.Identifier())
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", r.String())
	assert.Equal(t, r.String(), r.TargetName())
	assert.Equal(t, r.Path, r.TargetPath())
}

func TestWithIdentifier(t *testing.T) {
	t.Parallel()

	r := Repo{Service: "github.com", Namespace: "SierraSoftworks", Name: "git-tool", Path: "/a"}

	moved := r.WithIdentifier(identifier.Identifier{Path: "notheotherben/bender"}, "/b")
	assert.Equal(t, Repo{"github.com", "notheotherben", "bender", "/b"}, moved)

	other := r.WithIdentifier(identifier.Identifier{Scope: "gitlab.com", Path: "x/y"}, "/c")
	assert.Equal(t, "gitlab.com:x/y", other.String())

	// original untouched
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", r.String())
	assert.Equal(t, "/a", r.Path)
}

func TestExistsAndValid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := Repo{Service: "github.com", Namespace: "a", Name: "b", Path: filepath.Join(dir, "b")}

	assert.False(t, r.Exists())
	assert.False(t, r.Valid())

	require.NoError(t, os.Mkdir(r.Path, 0o755))
	assert.True(t, r.Exists())
	assert.False(t, r.Valid(), "exists does not imply valid")

	require.NoError(t, os.Mkdir(filepath.Join(r.Path, ".git"), 0o755))
	assert.True(t, r.Valid())

	file := Repo{Path: filepath.Join(dir, "file")}
	require.NoError(t, os.WriteFile(file.Path, nil, 0o644))
	assert.False(t, file.Exists())

	assert.False(t, Repo{}.Exists())
}

func TestScratchpad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sp := Scratchpad{Name: "2024w15", Path: filepath.Join(dir, "2024w15")}

	assert.False(t, sp.Exists())
	require.NoError(t, sp.Ensure())
	assert.True(t, sp.Exists())
	require.NoError(t, sp.Ensure(), "idempotent")

	assert.Equal(t, "2024w15", sp.TargetName())
	assert.Equal(t, sp.Path, sp.TargetPath())

	blocked := Scratchpad{Name: "file", Path: filepath.Join(dir, "file")}
	require.NoError(t, os.WriteFile(blocked.Path, nil, 0o644))
	assert.ErrorIs(t, blocked.Ensure(), errNotDir)
}

func TestTemp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := Temp{Name: "gt-20240101-120000-abcdef", Path: filepath.Join(dir, "gt-20240101-120000-abcdef")}

	assert.False(t, tmp.Exists())
	require.NoError(t, tmp.Create())
	assert.True(t, tmp.Exists())
	assert.Error(t, tmp.Create(), "never reuses an existing directory")

	require.NoError(t, os.WriteFile(filepath.Join(tmp.Path, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, tmp.Remove())
	assert.False(t, tmp.Exists())
	require.NoError(t, tmp.Remove(), "removing twice is fine")
}

func TestTargets(t *testing.T) {
	t.Parallel()

	targets := []Target{
		Repo{Service: "github.com", Namespace: "a", Name: "b", Path: "/x"},
		Scratchpad{Name: "2024w01", Path: "/y"},
		Temp{Name: "gt-20240101-120000-abcdef", Path: "/z"},
	}
	var names []string
	for _, tg := range targets {
		names = append(names, tg.TargetName())
	}
	assert.Equal(t, []string{"github.com:a/b", "2024w01", "gt-20240101-120000-abcdef"}, names)
}
