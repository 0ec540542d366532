// Package prompt asks the user short questions on stderr, such as the
// confirmation gt rename shows before moving a repository.
package prompt
