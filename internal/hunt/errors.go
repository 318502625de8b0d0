package hunt

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput             = errors.New("empty input")
	ErrMalformedHeader        = errors.New("malformed session header")
	ErrMalformedParticipant   = errors.New("malformed participant block")
	ErrNoParticipants         = errors.New("no participants in session")
	ErrInvalidTimestamp       = errors.New("invalid session timestamp")
	ErrDegenerateDistribution = errors.New("distribution total is zero")
)

// Messages shown to end users. Internal error text never reaches them.
const (
	MsgInvalidFormat = "Invalid input format. Please check your data."
	MsgParseFailed   = "Error parsing session data. Please check the input format."
)

// FormatError reports where a report stopped matching the expected shape.
// Kind is one of the Err* sentinels and is what errors.Is matches against.
type FormatError struct {
	Line   int
	Kind   error
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Kind, e.Detail)
}

func (e *FormatError) Unwrap() error {
	return e.Kind
}

func formatErrorf(line int, kind error, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// UserMessage maps an error from Check or Parse to the text a user should see.
// Empty input maps to no message.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, ErrEmptyInput) {
		return ""
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		return MsgInvalidFormat
	}
	return MsgParseFailed
}
