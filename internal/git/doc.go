// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Repository Setup
//
//   - [Clone]: Clone a remote into a repository path
//   - [Init]: Initialise a new repository
//   - [SetRemote]: Add or update a remote URL
//
// # Queries
//
//   - [OriginURL], [CurrentBranch], [IsDirty]: Single repository state
//   - [LoadStatuses]: Branch and dirty state for many repositories in parallel
package git
