// Package imap implements the wire-level IMAP4rev1 client engine: the
// tagged request/response framer, literal handling, string quoting, and
// the error taxonomy shared by every operation built on top of it.
package imap

import "fmt"

// Kind classifies an Error without requiring callers to inspect its
// message text. cmd/imap-client maps each Kind to an exit code.
type Kind int

const (
	// TCPConnection wraps an underlying socket I/O error.
	TCPConnection Kind = iota
	// MissingRead indicates a short or zero-byte read (peer truncation).
	MissingRead
	// MissingWrite indicates a short write.
	MissingWrite
	// CommandFailed indicates a tagged completion that was not OK.
	CommandFailed
	// MessageNotFound is the CommandFailed mapping for FETCH operations.
	MessageNotFound
	// MalformedHeader indicates a header field lacking ": " or an
	// unrecognized field name.
	MalformedHeader
	// MimeMatchFail indicates no recognized text/plain part was found
	// in a BODYSTRUCTURE response.
	MimeMatchFail
	// MimeHeaderMatchFail indicates MIME-Version or Content-Type did not
	// match the expected form.
	MimeHeaderMatchFail
	// Infallible marks an internal invariant violation: logically
	// unreachable, but surfaced rather than panicking.
	Infallible
)

func (k Kind) String() string {
	switch k {
	case TCPConnection:
		return "tcp_connection"
	case MissingRead:
		return "missing_read"
	case MissingWrite:
		return "missing_write"
	case CommandFailed:
		return "command_failed"
	case MessageNotFound:
		return "message_not_found"
	case MalformedHeader:
		return "malformed_header"
	case MimeMatchFail:
		return "mime_match_fail"
	case MimeHeaderMatchFail:
		return "mime_header_match_fail"
	case Infallible:
		return "infallible"
	default:
		return "unknown"
	}
}

// Error is the error type returned throughout this module and
// internal/client. It carries a Kind for exit-code mapping plus an
// optional human-readable detail and wrapped cause.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with the given Kind and detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap builds an Error with the given Kind around an underlying cause.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Detail: cause.Error(), Cause: cause}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	ie, ok := err.(*Error)
	return ok && ie.Kind == kind
}
