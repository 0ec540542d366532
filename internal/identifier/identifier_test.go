package identifier

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		want      Identifier
		namespace string
		name      string
	}{
		{"gh:SierraSoftworks/git-tool", Identifier{"gh", "SierraSoftworks/git-tool"}, "SierraSoftworks", "git-tool"},
		{"SierraSoftworks/git-tool", Identifier{"", "SierraSoftworks/git-tool"}, "SierraSoftworks", "git-tool"},
		{"ado:org/project/repo", Identifier{"ado", "org/project/repo"}, "org/project", "repo"},
		{"git-tool", Identifier{"", "git-tool"}, "", "git-tool"},
		{"  gh:a/b  ", Identifier{"gh", "a/b"}, "a", "b"},
		{"gh:a:b", Identifier{"gh", "a:b"}, "", "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.namespace, got.Namespace())
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "gh:", "\t"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrEmpty, "Parse(%q)", in)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	ids := []Identifier{
		{"", "name"},
		{"", "ns/name"},
		{"gh", "ns/name"},
		{"ado", "org/project/repo"},
		{"x", "a/b/c/d/e"},
	}

	for _, id := range ids {
		got, err := Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ns/name", Identifier{Path: "ns/name"}.String())
	assert.Equal(t, "gh:ns/name", Identifier{Scope: "gh", Path: "ns/name"}.String())
}

func TestPathSegments(t *testing.T) {
	t.Parallel()

	id := Identifier{Path: "/org//project/repo/"}
	segs := id.PathSegments()

	assert.Equal(t, []string{"org", "project", "repo"}, slices.Collect(segs))
	// restartable
	assert.Equal(t, []string{"org", "project", "repo"}, slices.Collect(segs))

	var first []string
	for s := range segs {
		first = append(first, s)
		break
	}
	assert.Equal(t, []string{"org"}, first)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	base, err := Parse("gh:SierraSoftworks/git-tool")
	require.NoError(t, err)

	tests := []struct {
		partial string
		want    string
	}{
		{"bender", "gh:SierraSoftworks/bender"},
		{"notheotherben/bender", "gh:notheotherben/bender"},
		{"ado:myorg/myteam/myrepo", "ado:myorg/myteam/myrepo"},
		// extra leading segments have no slot and are dropped
		{"extra/notheotherben/bender", "gh:notheotherben/bender"},
		{" bender ", "gh:SierraSoftworks/bender"},
	}

	for _, tt := range tests {
		t.Run(tt.partial, func(t *testing.T) {
			t.Parallel()
			got, err := base.Resolve(tt.partial)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	// the receiver is left untouched
	assert.Equal(t, "gh:SierraSoftworks/git-tool", base.String())
}

func TestResolveShortIdentifier(t *testing.T) {
	t.Parallel()

	id := Identifier{Path: "solo"}
	got, err := id.Resolve("a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.String())
}

func TestResolveEmpty(t *testing.T) {
	t.Parallel()

	id := Identifier{Scope: "gh", Path: "a/b"}
	for _, partial := range []string{"", "  "} {
		_, err := id.Resolve(partial)
		assert.ErrorIs(t, err, ErrEmpty)
	}
}
