package client

import (
	"fmt"
	"io"

	"imap-client/internal/header"
	"imap-client/internal/imap"
)

// List sends "FETCH 1:* BODY.PEEK[HEADER.FIELDS (SUBJECT)]" and writes
// one "<1-based index>: <subject>" line per message to w.
func (c *Client) List(w io.Writer) error {
	if c.state != Selected {
		return imap.New(imap.Infallible, "List called outside Selected state")
	}
	c.state = Operating

	group, err := c.engine.SendCommand(imap.TagList, "FETCH", "1:*",
		"BODY.PEEK[HEADER.FIELDS (SUBJECT)]")
	if err != nil {
		return c.fail(err)
	}
	if err := imap.CheckSuccess(imap.TagList, group); err != nil {
		c.logger.Warn("list fetch failed")
		return c.fail(err)
	}

	untagged := group[:len(group)-1]
	for i, line := range untagged {
		offset, length, ok := imap.LiteralOffset(line)
		if !ok {
			return c.fail(imap.New(imap.MalformedHeader, "untagged LIST line carried no literal"))
		}
		end := offset + int(length)
		if end > len(line) {
			return c.fail(imap.New(imap.MissingRead, "literal shorter than declared length"))
		}

		subject, err := header.ExtractSubject(line[offset:end])
		if err != nil {
			return c.fail(err)
		}

		if _, werr := fmt.Fprintf(w, "%d: %s\n", i+1, subject); werr != nil {
			return c.fail(imap.Wrap(imap.TCPConnection, werr))
		}
	}

	c.state = Selected
	return nil
}
