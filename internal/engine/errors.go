package engine

// Kind classifies the user-visible command failures. All of them are
// recoverable; none aborts the session.
type Kind int

const (
	// UsageError: malformed or missing command argument.
	UsageError Kind = iota
	// ValidationError: the argument parsed but is not acceptable,
	// e.g. an empty task description.
	ValidationError
	// RangeError: an index outside the current view.
	RangeError
	// UnknownCommandError: the first word matches no command.
	UnknownCommandError
)

// Error is a failed command. State is unchanged whenever one is
// returned.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func usageErrorf(msg string) *Error {
	return &Error{Kind: UsageError, Message: msg}
}
