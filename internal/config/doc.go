// Package config handles loading and validation of gt configuration.
//
// Configuration is read from ~/.config/git-tool/config.toml, or the file
// named by GITTOOL_CONFIG.
//
// # Configuration Sources (highest priority first)
//
//   - GITTOOL_DEV_DIRECTORY env var: root directory for repositories
//   - Config file settings
//   - Default values
//
// # Services
//
// Each [[services]] entry maps <directory>/<name> to a hosting provider.
// The pattern has one "*" per path segment below the service directory:
//
//	[[services]]
//	name = "github.com"
//	pattern = "*/*"
//	website = "https://github.com/{full-name}"
//	git_url = "git@github.com:{full-name}.git"
//
// The first service is the default for repository names given without one.
//
// # Apps
//
// Each [[apps]] entry is a program "gt open" can launch. The first is the
// default app.
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
