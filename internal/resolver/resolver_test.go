package resolver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/identifier"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

type fakeConfig struct {
	dev      string
	scratch  string
	services []config.Service
	aliases  map[string]string
}

func (c *fakeConfig) DevDirectory() string     { return c.dev }
func (c *fakeConfig) ScratchDirectory() string { return c.scratch }

func (c *fakeConfig) Service(name string) (config.Service, bool) {
	for _, svc := range c.services {
		if svc.Name == name {
			return svc, true
		}
	}
	return config.Service{}, false
}

func (c *fakeConfig) DefaultService() (config.Service, error) {
	if len(c.services) == 0 {
		return config.Service{}, apperr.User("no services", "add one")
	}
	return c.services[0], nil
}

func (c *fakeConfig) Alias(name string) (string, bool) {
	v, ok := c.aliases[name]
	return v, ok
}

var (
	github = config.Service{Name: "github.com", Pattern: "*/*"}
	azure  = config.Service{Name: "dev.azure.com", Pattern: "*/*/*"}
)

// newTestResolver creates a dev directory containing dirs (slash separated,
// relative to dev) and returns a resolver over it with its canonical path.
func newTestResolver(t *testing.T, services []config.Service, dirs ...string) (*Resolver, *fakeConfig, string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	dev := filepath.Join(root, "dev")
	require.NoError(t, os.Mkdir(dev, 0o755))
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dev, filepath.FromSlash(d)), 0o755))
	}

	cfg := &fakeConfig{
		dev:      dev,
		scratch:  filepath.Join(root, "scratch"),
		services: services,
	}
	return New(cfg), cfg, dev
}

func names(repos []repo.Repo) []string {
	out := make([]string, 0, len(repos))
	for _, rp := range repos {
		out = append(out, rp.String())
	}
	return out
}

func TestRepo(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github, azure})

	tests := []struct {
		name string
		path string
		want repo.Repo
	}{
		{
			name: "relative",
			path: "github.com/SierraSoftworks/git-tool",
			want: repo.Repo{Service: "github.com", Namespace: "SierraSoftworks", Name: "git-tool", Path: filepath.Join(dev, "github.com", "SierraSoftworks", "git-tool")},
		},
		{
			name: "absolute",
			path: filepath.Join(dev, "github.com", "a", "b"),
			want: repo.Repo{Service: "github.com", Namespace: "a", Name: "b", Path: filepath.Join(dev, "github.com", "a", "b")},
		},
		{
			name: "deep namespace",
			path: "dev.azure.com/org/project/repo",
			want: repo.Repo{Service: "dev.azure.com", Namespace: "org/project", Name: "repo", Path: filepath.Join(dev, "dev.azure.com", "org", "project", "repo")},
		},
		{
			name: "unclean",
			path: "github.com/x/../a/b/",
			want: repo.Repo{Service: "github.com", Namespace: "a", Name: "b", Path: filepath.Join(dev, "github.com", "a", "b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.Repo(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Exists(), "resolves before the repo exists")
		})
	}
}

func TestRepoErrors(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github, azure, {Name: "bad", Pattern: "*/x"}})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"unknown service", "SierraSoftworks/git-tool", "No service named"},
		{"too few segments", "github.com/git-tool", "does not match"},
		{"too many segments", "github.com/a/b/c", "does not match"},
		{"azure too few", "dev.azure.com/org/repo", "does not match"},
		{"dev directory itself", dev, "not inside your development directory"},
		{"empty", "", "not inside your development directory"},
		{"parent", filepath.Dir(dev), "not inside your development directory"},
		{"escapes", "../outside/a/b", "not inside your development directory"},
		{"sibling prefix", dev + "2/github.com/a/b", "not inside your development directory"},
		{"service only", "github.com", "does not match"},
		{"invalid pattern", "bad/a/b", "invalid pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.Repo(tt.path)
			require.Error(t, err)
			assert.True(t, apperr.IsUser(err), "%v", err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotEmpty(t, apperr.Advice(err))
		})
	}
}

func TestRepoSymlinkedDevDirectory(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	_, cfg, dev := newTestResolver(t, []config.Service{github}, "github.com/a/b")
	link := filepath.Join(filepath.Dir(dev), "link")
	require.NoError(t, os.Symlink(dev, link))
	cfg.dev = link
	r := New(cfg)

	for _, path := range []string{
		filepath.Join(link, "github.com", "a", "b"),
		filepath.Join(dev, "github.com", "a", "b"),
		filepath.Join(link, "github.com", "new", "repo"),
	} {
		got, err := r.Repo(path)
		require.NoError(t, err, path)
		assert.True(t, filepath.Dir(filepath.Dir(filepath.Dir(got.Path))) == dev, got.Path)
	}
}

func TestRepoSymlinkEscape(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	r, _, dev := newTestResolver(t, []config.Service{github}, "github.com/a")
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dev, "github.com", "a", "b")))

	_, err := r.Repo("github.com/a/b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not inside your development directory")
}

func TestRepoFromIdentifier(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github, azure})

	got, err := r.RepoFromIdentifier(identifier.Identifier{Path: "SierraSoftworks/git-tool"})
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", got.String())
	assert.Equal(t, filepath.Join(dev, "github.com", "SierraSoftworks", "git-tool"), got.Path)

	got, err = r.RepoFromIdentifier(identifier.Identifier{Scope: "dev.azure.com", Path: "org/project/repo"})
	require.NoError(t, err)
	assert.Equal(t, "org/project", got.Namespace)

	_, err = r.RepoFromIdentifier(identifier.Identifier{Scope: "gitlab.com", Path: "a/b"})
	assert.ErrorContains(t, err, "No service named")

	_, err = r.RepoFromIdentifier(identifier.Identifier{Scope: "dev.azure.com", Path: "a/b"})
	assert.ErrorContains(t, err, "does not match")
}

func TestBestRepoExactPathWins(t *testing.T) {
	t.Parallel()

	// the invalid service would make any enumeration fail
	r, _, _ := newTestResolver(t,
		[]config.Service{github, {Name: "broken", Pattern: "x"}},
		"github.com/SierraSoftworks/git-tool",
		"github.com/SierraSoftworks/git-tool-extra",
		"broken/a",
	)

	got, err := r.BestRepo("github.com/SierraSoftworks/git-tool")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", got.String())

	_, err = r.BestRepo("git-tool")
	assert.ErrorIs(t, err, errInvalidPattern)
}

func TestBestRepoFuzzy(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github},
		"github.com/SierraSoftworks/bender",
		"github.com/SierraSoftworks/git-tool",
	)

	got, err := r.BestRepo("bender")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/bender", got.String())
	assert.Equal(t, filepath.Join(dev, "github.com", "SierraSoftworks", "bender"), got.Path)

	got, err = r.BestRepo("sierra/gittool")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", got.String())
}

func TestBestRepoAmbiguity(t *testing.T) {
	t.Parallel()

	svcA := config.Service{Name: "svcA", Pattern: "*/*"}
	svcB := config.Service{Name: "svcB", Pattern: "*/*"}
	r, _, _ := newTestResolver(t, []config.Service{svcA, svcB},
		"svcA/ns/test1",
		"svcB/ns/test1",
	)

	got, err := r.BestRepo("ns/test1")
	require.NoError(t, err)
	assert.Equal(t, "ns/test1", got.FullName())
	assert.Equal(t, "svcA", got.Service)

	_, err = r.BestRepo("test1")
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
	assert.Contains(t, err.Error(), "matches 2 repositories")
	assert.Contains(t, err.Error(), "svcA/ns/test1")
	assert.Contains(t, apperr.Advice(err), "fully qualified")
}

func TestBestRepoNewRepo(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github, azure},
		"github.com/SierraSoftworks/bender",
	)

	got, err := r.BestRepo("qqq/zzz")
	require.NoError(t, err)
	assert.Equal(t, "github.com:qqq/zzz", got.String())
	assert.Equal(t, filepath.Join(dev, "github.com", "qqq", "zzz"), got.Path)
	assert.False(t, got.Exists())

	_, err = r.BestRepo("zzz")
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
	assert.Contains(t, err.Error(), "No matching repository found.")

	_, err = r.BestRepo("   ")
	assert.True(t, apperr.IsUser(err))
}

func TestBestRepoAbsolutePath(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github},
		"github.com/SierraSoftworks/bender",
	)

	got, err := r.BestRepo(filepath.Join(dev, "github.com", "SierraSoftworks", "bender"))
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/bender", got.String())

	outside := filepath.Join(filepath.Dir(dev), "srv", "proj")
	got, err = r.BestRepo(outside)
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
	assert.Contains(t, err.Error(), "not inside your development directory")
	assert.Empty(t, got.Path)
}

func TestBestRepoIdentifier(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, []config.Service{github, azure})

	got, err := r.BestRepo("dev.azure.com:org/project/repo")
	require.NoError(t, err)
	assert.Equal(t, "dev.azure.com:org/project/repo", got.String())

	_, err = r.BestRepo("gitlab.com:a/b")
	assert.ErrorContains(t, err, "No service named")
}

func TestBestRepoAlias(t *testing.T) {
	t.Parallel()

	r, cfg, _ := newTestResolver(t, []config.Service{github},
		"github.com/SierraSoftworks/git-tool",
	)
	cfg.aliases = map[string]string{
		"gt":   "github.com/SierraSoftworks/git-tool",
		"id":   "github.com:SierraSoftworks/bender",
		"loop": "gt",
	}

	got, err := r.BestRepo("gt")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", got.String())

	got, err = r.BestRepo("id")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/bender", got.String())

	// one level only: "loop" becomes the literal name "gt"
	got, err = r.BestRepo("loop")
	require.NoError(t, err)
	assert.Equal(t, "github.com:SierraSoftworks/git-tool", got.String(), "fuzzy matched, not alias expanded")
}

func TestExactRepo(t *testing.T) {
	t.Parallel()

	r, cfg, dev := newTestResolver(t, []config.Service{github, azure},
		"github.com/SierraSoftworks/git-tool",
	)
	cfg.aliases = map[string]string{"gt": "github.com:SierraSoftworks/git-tool"}

	tests := []struct {
		name string
		want string
	}{
		// would fuzzy match git-tool, but names a new repository
		{"SierraSoftworks/tool", "github.com:SierraSoftworks/tool"},
		{"github.com/SierraSoftworks/git-tool", "github.com:SierraSoftworks/git-tool"},
		{"dev.azure.com:org/project/repo", "dev.azure.com:org/project/repo"},
		{"gt", "github.com:SierraSoftworks/git-tool"},
		{filepath.Join(dev, "github.com", "a", "b"), "github.com:a/b"},
	}

	for _, tt := range tests {
		got, err := r.ExactRepo(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got.String(), tt.name)
	}

	for _, name := range []string{"", "git-tool", "a/b/c", "gitlab.com:a/b", filepath.Join(filepath.Dir(dev), "elsewhere")} {
		_, err := r.ExactRepo(name)
		require.Error(t, err, name)
		assert.True(t, apperr.IsUser(err), name)
	}
}

func TestRepos(t *testing.T) {
	t.Parallel()

	r, _, dev := newTestResolver(t, []config.Service{github, azure},
		"github.com/SierraSoftworks/git-tool",
		"github.com/SierraSoftworks/bender",
		"github.com/notheotherben/cv",
		"github.com/shallow",
		"dev.azure.com/org/project/repo",
		"notes/a/b",
	)
	require.NoError(t, os.WriteFile(filepath.Join(dev, "github.com", "file"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dev, "README"), nil, 0o644))

	repos, err := r.Repos()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"github.com:SierraSoftworks/git-tool",
		"github.com:SierraSoftworks/bender",
		"github.com:notheotherben/cv",
		"dev.azure.com:org/project/repo",
	}, names(repos))
}

func TestReposInvalidPattern(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, []config.Service{github, {Name: "odd", Pattern: "*/?"}},
		"odd/a/b",
	)

	_, err := r.Repos()
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
	assert.ErrorIs(t, err, errInvalidPattern)

	_, err = r.ReposFor(config.Service{Name: "odd", Pattern: "*/?"})
	assert.ErrorIs(t, err, errInvalidPattern)
}

func TestReposSkipsUnreadableService(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permissions are not enforced")
	}

	var buf bytes.Buffer
	_, cfg, dev := newTestResolver(t, []config.Service{github, azure},
		"github.com/a/b",
		"dev.azure.com/org/project/repo",
	)
	r := New(cfg, WithLogger(log.New(&buf, true, false)))

	locked := filepath.Join(dev, "dev.azure.com")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	repos, err := r.Repos()
	require.NoError(t, err)
	assert.Equal(t, []string{"github.com:a/b"}, names(repos))
	assert.Contains(t, buf.String(), "skipping service")

	_, err = r.ReposFor(azure)
	assert.True(t, apperr.IsUser(err))
}

func TestReposForMissingServiceDirectory(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, []config.Service{github})
	repos, err := r.ReposFor(github)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestReposMissingDevDirectory(t *testing.T) {
	t.Parallel()

	cfg := &fakeConfig{dev: filepath.Join(t.TempDir(), "missing"), services: []config.Service{github}}
	_, err := New(cfg).Repos()
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestNoDevDirectory(t *testing.T) {
	t.Parallel()

	_, err := New(&fakeConfig{services: []config.Service{github}}).Repo("github.com/a/b")
	assert.True(t, apperr.IsUser(err))
}

func TestCurrentRepo(t *testing.T) {
	t.Parallel()

	_, cfg, dev := newTestResolver(t, []config.Service{github}, "github.com/a/b/src/pkg")

	tests := []struct {
		name string
		wd   string
		want string
	}{
		{"repo root", filepath.Join(dev, "github.com", "a", "b"), "github.com:a/b"},
		{"subdirectory", filepath.Join(dev, "github.com", "a", "b", "src", "pkg"), "github.com:a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(cfg, WithWorkingDir(func() (string, error) { return tt.wd, nil }))
			got, err := r.CurrentRepo()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	for _, wd := range []string{filepath.Join(dev, "github.com", "a"), dev, filepath.Dir(dev)} {
		r := New(cfg, WithWorkingDir(func() (string, error) { return wd, nil }))
		_, err := r.CurrentRepo()
		require.Error(t, err, wd)
		assert.True(t, apperr.IsUser(err), wd)
		assert.Contains(t, err.Error(), "is not a repository")
	}

	r := New(cfg, WithWorkingDir(func() (string, error) { return "", errors.New("getwd failed") }))
	_, err := r.CurrentRepo()
	assert.True(t, apperr.IsSystem(err))
}

func TestScratchpads(t *testing.T) {
	t.Parallel()

	r, cfg, _ := newTestResolver(t, []config.Service{github})

	pads, err := r.Scratchpads()
	require.NoError(t, err)
	assert.Empty(t, pads, "missing scratch directory is empty")

	for _, d := range []string{"2024w15", "2024w02", "notes"} {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.scratch, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.scratch, "todo.txt"), nil, 0o644))

	pads, err = r.Scratchpads()
	require.NoError(t, err)
	var got []string
	for _, p := range pads {
		got = append(got, p.Name)
		assert.Equal(t, filepath.Join(cfg.scratch, p.Name), p.Path)
	}
	assert.Equal(t, []string{"2024w02", "2024w15", "notes"}, got)
}

func TestScratchpad(t *testing.T) {
	t.Parallel()

	r, cfg, _ := newTestResolver(t, []config.Service{github})

	sp, err := r.Scratchpad("2024w15")
	require.NoError(t, err)
	assert.Equal(t, repo.Scratchpad{Name: "2024w15", Path: filepath.Join(cfg.scratch, "2024w15")}, sp)
	assert.False(t, sp.Exists())

	for _, name := range []string{"", " ", ".", "..", "a/b", `a\b`} {
		_, err := r.Scratchpad(name)
		assert.True(t, apperr.IsUser(err), "%q", name)
	}
}

func TestCurrentScratchpad(t *testing.T) {
	t.Parallel()

	_, cfg, _ := newTestResolver(t, []config.Service{github})

	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, 4, 10, 12, 0, 0, 0, time.Local), "2024w15"},
		{time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local), "2024w01"},
		{time.Date(2021, 1, 1, 12, 0, 0, 0, time.Local), "2020w53"},
		{time.Date(2024, 12, 30, 12, 0, 0, 0, time.Local), "2025w01"},
	}

	for _, tt := range tests {
		r := New(cfg, WithClock(func() time.Time { return tt.now }))
		sp, err := r.CurrentScratchpad()
		require.NoError(t, err)
		assert.Equal(t, tt.want, sp.Name)
		assert.Equal(t, filepath.Join(cfg.scratch, tt.want), sp.Path)
	}
}

func TestTempTarget(t *testing.T) {
	t.Parallel()

	_, cfg, dev := newTestResolver(t, []config.Service{github})
	tmpRoot := t.TempDir()
	now := time.Date(2024, 4, 12, 9, 30, 0, 0, time.Local)
	r := New(cfg, WithTempDir(tmpRoot), WithClock(func() time.Time { return now }))

	tmp, err := r.TempTarget()
	require.NoError(t, err)
	assert.Equal(t, tmpRoot, filepath.Dir(tmp.Path))
	assert.Equal(t, filepath.Base(tmp.Path), tmp.Name)
	assert.Regexp(t, `^gt-20240412-093000-[0-9a-f]{6}$`, tmp.Name)
	assert.False(t, tmp.Exists(), "the resolver does not create it")
	assert.NotContains(t, tmp.Path, dev)

	other, err := r.TempTarget()
	require.NoError(t, err)
	assert.NotEqual(t, tmp.Path, other.Path)

	_, err = New(cfg, WithTempDir("")).TempTarget()
	require.Error(t, err)
	assert.True(t, apperr.IsUser(err))
}

func TestTempName(t *testing.T) {
	t.Parallel()

	got := TempName(time.Date(2024, 12, 30, 23, 5, 9, 0, time.UTC), "00ff00")
	assert.Equal(t, "gt-20241230-230509-00ff00", got)
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	got, err := canonicalize(filepath.Join(root, "missing", "deeper"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "missing", "deeper"), got)

	if runtime.GOOS != "windows" {
		require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
		require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))
		got, err = canonicalize(filepath.Join(root, "link", "missing"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "real", "missing"), got)
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/dev")
	tests := []struct {
		path string
		rel  string
		ok   bool
	}{
		{"/dev/github.com/a/b", "github.com/a/b", true},
		{"/dev", "", false},
		{"/", "", false},
		{"/devel/a", "", false},
		{"/other/a", "", false},
		{"/dev/..foo", "..foo", true},
	}

	for _, tt := range tests {
		rel, ok := within(root, filepath.FromSlash(tt.path))
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.rel, rel, tt.path)
	}
}
