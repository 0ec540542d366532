// Package apperr defines the two error kinds gt surfaces to its users.
//
// A User error is something the operator can fix (bad input, missing
// directory, ambiguous name). A System error is an unexpected failure in the
// environment or in gt itself. Both always carry a description of the problem
// and an advice line telling the user what to do next.
package apperr

import "errors"

// Kind distinguishes user-actionable errors from system failures.
type Kind int

const (
	// KindUser marks problems the user can resolve.
	KindUser Kind = iota
	// KindSystem marks unexpected environment or internal failures.
	KindSystem
)

func (k Kind) String() string {
	if k == KindSystem {
		return "system"
	}
	return "user"
}

// Error is an error with a description and remediation advice.
type Error struct {
	Kind        Kind
	Description string
	Advice      string
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Description + ": " + e.Cause.Error()
	}
	return e.Description
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// User creates a user-actionable error.
func User(description, advice string) error {
	return &Error{Kind: KindUser, Description: description, Advice: advice}
}

// UserWrap creates a user-actionable error caused by err.
func UserWrap(err error, description, advice string) error {
	return &Error{Kind: KindUser, Description: description, Advice: advice, Cause: err}
}

// System creates a system error.
func System(description, advice string) error {
	return &Error{Kind: KindSystem, Description: description, Advice: advice}
}

// SystemWrap creates a system error caused by err.
func SystemWrap(err error, description, advice string) error {
	return &Error{Kind: KindSystem, Description: description, Advice: advice, Cause: err}
}

// IsUser reports whether err (or anything it wraps) is a user error.
func IsUser(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUser
}

// IsSystem reports whether err (or anything it wraps) is a system error.
func IsSystem(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindSystem
}

// Advice returns the advice of the outermost *Error in err's chain.
// Returns "" if err carries no advice.
func Advice(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Advice
	}
	return ""
}

// ReportBug is the standard advice attached to system errors.
const ReportBug = "Please report this issue at https://github.com/SierraSoftworks/git-tool/issues so that we can fix it."
