package styles

// Status symbols
const (
	PassSymbol  = "✓"
	WarnSymbol  = "⚠"
	FailSymbol  = "✗"
	DirtySymbol = "●"
	CleanSymbol = "○"
)

// Pass renders a green check followed by text.
func Pass(text string) string {
	return SuccessStyle.Render(PassSymbol) + " " + text
}

// Warn renders an orange warning sign followed by text.
func Warn(text string) string {
	return WarningStyle.Render(WarnSymbol) + " " + text
}

// Fail renders a red cross followed by text.
func Fail(text string) string {
	return ErrorStyle.Render(FailSymbol) + " " + text
}

// DirtyState renders the working tree marker used by "gt list --status".
func DirtyState(dirty bool) string {
	if dirty {
		return WarningStyle.Render(DirtySymbol + " dirty")
	}
	return MutedStyle.Render(CleanSymbol + " clean")
}
