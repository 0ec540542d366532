// Package launcher starts configured apps inside a repository or scratchpad.
//
// An app is a command with arguments and extra environment variables:
//
//	[[apps]]
//	name = "tmux"
//	command = "tmux"
//	args = ["new-session", "-A", "-s", "{name}"]
//	environment = ["GT_REPO={full-name}"]
//
// # Placeholder Substitution
//
// Args and environment values may use:
//
//   - {target}: Target name (service:namespace/name, or the scratchpad name)
//   - {path}: Absolute path of the target directory
//   - {service}: Service name (empty for scratchpads)
//   - {namespace}: Repository namespace (empty for scratchpads)
//   - {name}: Repository or scratchpad name
//   - {full-name}: namespace/name (the scratchpad name for scratchpads)
//
// The command runs directly, not through a shell, so values are never
// quoted. It runs in the target directory with the terminal attached and
// gt waits for it to exit.
package launcher
