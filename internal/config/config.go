package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath   = "GITTOOL_CONFIG"
	EnvDevDirectory = "GITTOOL_DEV_DIRECTORY"
)

// Service describes a hosting provider and how its repositories are laid
// out beneath <dev>/<name>.
type Service struct {
	Name    string `toml:"name" json:"name"`
	Pattern string `toml:"pattern" json:"pattern"` // "*/*" = namespace/name
	Website string `toml:"website" json:"website"`
	GitURL  string `toml:"git_url" json:"git_url"`
}

// ValidPattern reports whether the pattern consists only of "*" segments.
func (s Service) ValidPattern() bool {
	if s.Pattern == "" {
		return false
	}
	for seg := range strings.SplitSeq(s.Pattern, "/") {
		if seg != "*" {
			return false
		}
	}
	return true
}

// Depth is the number of path segments (namespace + name) a repo has.
func (s Service) Depth() int {
	return strings.Count(s.Pattern, "/") + 1
}

// WebsiteURL renders the service's website template for a repo.
func (s Service) WebsiteURL(namespace, name string) string {
	return s.render(s.Website, namespace, name)
}

// GitCloneURL renders the service's git URL template for a repo.
func (s Service) GitCloneURL(namespace, name string) string {
	return s.render(s.GitURL, namespace, name)
}

// render substitutes {service}, {namespace}, {name} and {full-name}.
func (s Service) render(tmpl, namespace, name string) string {
	fullName := name
	if namespace != "" {
		fullName = namespace + "/" + name
	}
	return strings.NewReplacer(
		"{service}", s.Name,
		"{namespace}", namespace,
		"{name}", name,
		"{full-name}", fullName,
	).Replace(tmpl)
}

// App is a program gt can launch inside a repository or scratchpad.
type App struct {
	Name        string   `toml:"name" json:"name"`
	Command     string   `toml:"command" json:"command"`
	Args        []string `toml:"args,omitempty" json:"args,omitempty"`
	Environment []string `toml:"environment,omitempty" json:"environment,omitempty"` // KEY=VALUE
}

// Features toggles optional behaviour.
type Features struct {
	OpenNewRepoInDefaultApp bool `toml:"open_new_repo_in_default_app" json:"open_new_repo_in_default_app"`
}

// Config holds the gt configuration.
type Config struct {
	Directory   string            `toml:"directory" json:"directory"`
	Scratchpads string            `toml:"scratchpads,omitempty" json:"scratchpads,omitempty"`
	Services    []Service         `toml:"services" json:"services"`
	Apps        []App             `toml:"apps" json:"apps"`
	Aliases     map[string]string `toml:"aliases,omitempty" json:"aliases,omitempty"`
	Features    Features          `toml:"features" json:"features"`
}

// DevDirectory returns the root directory holding all repositories.
func (c *Config) DevDirectory() string {
	return c.Directory
}

// ScratchDirectory returns the scratchpad root, defaulting to <dev>/scratch.
func (c *Config) ScratchDirectory() string {
	if c.Scratchpads != "" {
		return c.Scratchpads
	}
	return filepath.Join(c.Directory, "scratch")
}

// Service looks up a service by name.
func (c *Config) Service(name string) (Service, bool) {
	for _, svc := range c.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}

// DefaultService returns the first configured service.
func (c *Config) DefaultService() (Service, error) {
	if len(c.Services) == 0 {
		return Service{}, apperr.User(
			"No services are configured.",
			fmt.Sprintf("Add at least one [[services]] entry to %s.", displayPath()))
	}
	return c.Services[0], nil
}

// Alias returns the expansion of an alias.
func (c *Config) Alias(name string) (string, bool) {
	v, ok := c.Aliases[name]
	return v, ok
}

// SetAlias adds or replaces an alias.
func (c *Config) SetAlias(name, target string) {
	if c.Aliases == nil {
		c.Aliases = make(map[string]string)
	}
	c.Aliases[name] = target
}

// DeleteAlias removes an alias, reporting whether it existed.
func (c *Config) DeleteAlias(name string) bool {
	if _, ok := c.Aliases[name]; !ok {
		return false
	}
	delete(c.Aliases, name)
	return true
}

// App looks up an app by name.
func (c *Config) App(name string) (App, bool) {
	for _, app := range c.Apps {
		if app.Name == name {
			return app, true
		}
	}
	return App{}, false
}

// DefaultApp returns the first configured app.
func (c *Config) DefaultApp() (App, error) {
	if len(c.Apps) == 0 {
		return App{}, apperr.User(
			"No apps are configured.",
			fmt.Sprintf("Add at least one [[apps]] entry to %s.", displayPath()))
	}
	return c.Apps[0], nil
}

// DefaultServices are used when the config file defines none.
func DefaultServices() []Service {
	return []Service{
		{
			Name:    "github.com",
			Pattern: "*/*",
			Website: "https://github.com/{full-name}",
			GitURL:  "git@github.com:{full-name}.git",
		},
		{
			Name:    "gitlab.com",
			Pattern: "*/*",
			Website: "https://gitlab.com/{full-name}",
			GitURL:  "git@gitlab.com:{full-name}.git",
		},
		{
			Name:    "bitbucket.org",
			Pattern: "*/*",
			Website: "https://bitbucket.org/{full-name}",
			GitURL:  "git@bitbucket.org:{full-name}.git",
		},
		{
			Name:    "dev.azure.com",
			Pattern: "*/*/*",
			Website: "https://dev.azure.com/{namespace}/_git/{name}",
			GitURL:  "git@ssh.dev.azure.com:v3/{full-name}",
		},
	}
}

// DefaultApps are used when the config file defines none.
func DefaultApps() []App {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return []App{
		{Name: "shell", Command: shell},
		{Name: "code", Command: "code", Args: []string{"."}},
	}
}

// Default returns the default configuration.
func Default() Config {
	dir, _ := expandPath("~/dev")
	return Config{
		Directory: dir,
		Services:  DefaultServices(),
		Apps:      DefaultApps(),
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Path returns the config file location: $GITTOOL_CONFIG or
// ~/.config/git-tool/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-tool", "config.toml"), nil
}

func displayPath() string {
	if p, err := Path(); err == nil {
		return p
	}
	return "your config file"
}

// Load reads the config file from Path().
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default())
	}
	return LoadFile(path)
}

// LoadFile reads config from path, returning Default() if it doesn't exist.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(Default())
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, validates and normalises TOML config data.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	def := Default()
	if cfg.Directory == "" {
		cfg.Directory = def.Directory
	}
	if len(cfg.Services) == 0 {
		cfg.Services = def.Services
	}
	if len(cfg.Apps) == 0 {
		cfg.Apps = def.Apps
	}

	return applyEnv(cfg)
}

// applyEnv applies environment overrides, then validates and expands paths.
func applyEnv(cfg Config) (Config, error) {
	if dir := os.Getenv(EnvDevDirectory); dir != "" {
		cfg.Directory = dir
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	var err error
	if cfg.Directory, err = expandPath(cfg.Directory); err != nil {
		return Default(), fmt.Errorf("expand directory: %w", err)
	}
	if cfg.Scratchpads, err = expandPath(cfg.Scratchpads); err != nil {
		return Default(), fmt.Errorf("expand scratchpads: %w", err)
	}

	return cfg, nil
}

// Save writes the config as TOML to path atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Update applies fn to the config file at path and saves the result.
// The file is decoded as written, without defaults or environment
// overrides, so only fn's changes end up on disk. A missing file starts
// from the default config.
func Update(path string, fn func(*Config) error) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data = []byte(defaultConfig)
	} else if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return fmt.Errorf("%s: failed to parse config file: %w", path, err)
	}
	if err := fn(&cfg); err != nil {
		return err
	}
	return cfg.Save(path)
}

const defaultConfig = `# git-tool configuration

# Directory holding all repositories as <service>/<namespace>/<name>.
# Must be an absolute path or start with ~ (GITTOOL_DEV_DIRECTORY overrides it).
directory = "~/dev"

# Directory for weekly scratchpads (defaults to <directory>/scratch).
# scratchpads = "~/scratch"

# Services map a directory below <directory> to a hosting provider.
# pattern uses one "*" per path segment: "*/*" is namespace/name.
# Templates support {service}, {namespace}, {name} and {full-name}.
# The first service is the default for names without a service prefix.
[[services]]
name = "github.com"
pattern = "*/*"
website = "https://github.com/{full-name}"
git_url = "git@github.com:{full-name}.git"

[[services]]
name = "gitlab.com"
pattern = "*/*"
website = "https://gitlab.com/{full-name}"
git_url = "git@gitlab.com:{full-name}.git"

[[services]]
name = "dev.azure.com"
pattern = "*/*/*"
website = "https://dev.azure.com/{namespace}/_git/{name}"
git_url = "git@ssh.dev.azure.com:v3/{full-name}"

# Apps are launched inside a repository or scratchpad by "gt open".
# The first app is the default.
# Args and environment support {target}, {path}, {service}, {namespace},
# {name} and {full-name}.
[[apps]]
name = "shell"
command = "bash"

[[apps]]
name = "code"
command = "code"
args = ["."]

# [[apps]]
# name = "tmux"
# command = "tmux"
# args = ["new-session", "-A", "-s", "{name}"]
# environment = ["GT_REPO={full-name}"]

# Aliases expand before resolution: "gt open gt" opens github.com/SierraSoftworks/git-tool
# [aliases]
# gt = "github.com/SierraSoftworks/git-tool"

[features]
# Launch the default app after "gt new".
open_new_repo_in_default_app = false
`

// DefaultConfig returns the commented config file written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type ctxKey struct{}

// WithConfig stores the config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the default config.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	def := Default()
	return &def
}
