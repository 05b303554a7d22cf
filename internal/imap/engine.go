package imap

import (
	"bufio"
	"bytes"
	"strings"
)

// Engine sends tagged commands over a buffered connection and collects
// the matching response group, classifying the tagged completion as
// OK/NO/BAD. It owns the connection's input and output buffers
// exclusively; callers never write to or read from the underlying
// stream directly.
type Engine struct {
	w      *bufio.Writer
	framer *Framer
}

// NewEngine wraps a writer and reader pair in an Engine.
func NewEngine(w *bufio.Writer, r *bufio.Reader) *Engine {
	return &Engine{w: w, framer: NewFramer(r)}
}

// SendCommand writes "tag SP verb (SP arg)* CRLF" as a single buffered
// write followed by an explicit flush, then reads the matching response
// group.
func (e *Engine) SendCommand(tag, verb string, args ...string) ([][]byte, error) {
	if !ValidTag(tag) {
		return nil, New(Infallible, "invalid tag: "+tag)
	}

	var b bytes.Buffer
	b.WriteString(tag)
	b.WriteByte(' ')
	b.WriteString(verb)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	b.WriteString("\r\n")
	payload := b.Bytes()

	n, err := e.w.Write(payload)
	if err != nil {
		return nil, Wrap(TCPConnection, err)
	}
	if n != len(payload) {
		return nil, New(MissingWrite, "short write")
	}
	if err := e.w.Flush(); err != nil {
		return nil, Wrap(TCPConnection, err)
	}

	return e.framer.ReadGroup(tag)
}

// CheckSuccess classifies the tagged completion line (the last line of
// group) as OK or not. Any non-OK prefix ("NO", "BAD", or unexpected)
// yields a CommandFailed error.
func CheckSuccess(tag string, group [][]byte) error {
	if len(group) == 0 {
		return New(Infallible, "empty response group")
	}
	last := strings.ToLower(strings.TrimRight(string(group[len(group)-1]), "\r\n"))
	wantPrefix := strings.ToLower(tag) + " ok"
	if strings.HasPrefix(last, wantPrefix) {
		return nil
	}
	return New(CommandFailed, last)
}
