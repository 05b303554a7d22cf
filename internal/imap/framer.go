package imap

import (
	"bufio"
	"io"
)

// Framer reads IMAP response groups off a buffered stream: zero or more
// untagged lines (each possibly carrying one {N}CRLF literal) followed by
// exactly one tagged completion line whose tag matches the command that
// provoked it.
type Framer struct {
	r *bufio.Reader
}

// NewFramer wraps r in a Framer.
func NewFramer(r *bufio.Reader) *Framer {
	return &Framer{r: r}
}

// ReadGroup consumes bytes until a complete response group for tag has
// been collected, returning the ordered line buffers. Each untagged line
// that declared a literal has the literal's raw bytes appended directly
// after its "}\r\n" terminator, so a single returned line may embed CRLFs
// that were part of the literal payload, not line breaks.
func (f *Framer) ReadGroup(tag string) ([][]byte, error) {
	var group [][]byte

	for {
		line, err := f.readLine()
		if err != nil {
			return nil, err
		}

		if len(line) == 0 {
			return nil, New(MissingRead, "peer closed connection")
		}

		switch line[0] {
		case '*':
			if n, _, ok := ParseLiteral(line); ok {
				lit, err := f.readExact(n)
				if err != nil {
					return nil, err
				}
				line = append(line, lit...)
			}
			group = append(group, line)

		default:
			if isTaggedLine(line, tag) {
				group = append(group, line)
				return group, nil
			}
			// Unrecognized leading bytes (a "+" continuation request, a
			// stray greeting, ...) are discarded. This client never emits
			// a synchronizing-literal argument, so a "+" line is never
			// expected here.
		}
	}
}

// readLine reads one line up to and including the next LF. A short read
// (fewer bytes returned than actually consumed from the stream) or a
// zero-byte read at EOF is reported as MissingRead.
func (f *Framer) readLine() ([]byte, error) {
	line, err := f.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			if len(line) == 0 {
				return nil, New(MissingRead, "connection closed before tagged completion")
			}
			return nil, New(MissingRead, "truncated line at EOF")
		}
		return nil, Wrap(TCPConnection, err)
	}
	return line, nil
}

// readExact reads exactly n literal bytes verbatim, including any CR, LF,
// or NUL bytes they may contain.
func (f *Framer) readExact(n int64) ([]byte, error) {
	if n < 0 {
		return nil, New(Infallible, "negative literal length")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(f.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, New(MissingRead, "truncated literal")
		}
		return nil, Wrap(TCPConnection, err)
	}
	return buf, nil
}

// isTaggedLine reports whether line is the tagged completion for tag:
// it must begin with tag followed by a space.
func isTaggedLine(line []byte, tag string) bool {
	if len(line) <= len(tag) {
		return false
	}
	if string(line[:len(tag)]) != tag {
		return false
	}
	return line[len(tag)] == ' '
}
