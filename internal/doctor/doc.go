// Package doctor diagnoses a gt installation and optionally repairs it.
//
// The checks cover:
//
//   - Tools: git on PATH and the default app's command.
//   - Config: validation errors and service patterns that can never match.
//   - Directories: the development and scratchpad directories.
//   - Aliases: alias targets that do not resolve to a repository location.
//
// # Usage
//
//	report := doctor.Check(ctx, cfg)     // collect results
//	err := doctor.Run(ctx, w, cfg, false) // print a report
//	err := doctor.Run(ctx, w, cfg, true)  // print, then fix what can be fixed
//
// Only missing directories are fixable. Each [Issue] carries the advice
// shown to the user.
package doctor
