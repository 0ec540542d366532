// Package ui groups the terminal output components of gt.
//
//   - styles: shared lipgloss colors, styles and status symbols
//   - static: borderless tables and detail blocks for list/info output
//   - picker: interactive fuzzy-filtered selection (gt open -i, gt info -i)
//   - prompt: yes/no confirmation (gt rename)
//   - progress: spinner shown while cloning
//
// Interactive components draw on stderr so stdout can be piped.
package ui
