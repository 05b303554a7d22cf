package client

import (
	"io"

	"imap-client/internal/imap"
)

// Retrieve sends "FETCH <n> BODY.PEEK[]" and writes the raw literal
// payload verbatim to w. n is either a decimal message sequence number
// or "*" for the last message.
func (c *Client) Retrieve(w io.Writer, n string) error {
	if c.state != Selected {
		return imap.New(imap.Infallible, "Retrieve called outside Selected state")
	}
	c.state = Operating

	group, err := c.engine.SendCommand(imap.TagRetrieve, "FETCH", n, "BODY.PEEK[]")
	if err != nil {
		return c.fail(err)
	}
	if err := imap.CheckSuccess(imap.TagRetrieve, group); err != nil {
		c.logger.Warn("retrieve failed", "msg", n)
		c.fail(err)
		return imap.New(imap.MessageNotFound, "retrieve: "+err.Error())
	}

	payload, err := literalPayload(group)
	if err != nil {
		return c.fail(err)
	}

	if _, werr := w.Write(payload); werr != nil {
		return c.fail(imap.Wrap(imap.TCPConnection, werr))
	}

	c.state = Selected
	return nil
}

// literalPayload locates the {N}CRLF literal in the first untagged line
// of group and returns exactly its N bytes.
func literalPayload(group [][]byte) ([]byte, error) {
	if len(group) < 2 {
		return nil, imap.New(imap.Infallible, "expected untagged data before tagged completion")
	}
	offset, length, ok := imap.LiteralOffset(group[0])
	if !ok {
		return nil, imap.New(imap.Infallible, "untagged line carried no literal")
	}
	end := offset + int(length)
	if end > len(group[0]) {
		return nil, imap.New(imap.MissingRead, "literal shorter than declared length")
	}
	return group[0][offset:end], nil
}
