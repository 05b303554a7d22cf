package client

import (
	"io"

	"imap-client/internal/header"
	"imap-client/internal/imap"
)

// Parse sends "FETCH <n> BODY.PEEK[HEADER.FIELDS (FROM TO DATE SUBJECT)]",
// parses the literal payload into an envelope, and writes the fixed
// presentation form to w.
func (c *Client) Parse(w io.Writer, n string) error {
	if c.state != Selected {
		return imap.New(imap.Infallible, "Parse called outside Selected state")
	}
	c.state = Operating

	group, err := c.engine.SendCommand(imap.TagParse, "FETCH", n,
		"BODY.PEEK[HEADER.FIELDS (FROM TO DATE SUBJECT)]")
	if err != nil {
		return c.fail(err)
	}
	if err := imap.CheckSuccess(imap.TagParse, group); err != nil {
		c.logger.Warn("parse fetch failed", "msg", n)
		c.fail(err)
		return imap.New(imap.MessageNotFound, "parse: "+err.Error())
	}

	payload, err := literalPayload(group)
	if err != nil {
		return c.fail(err)
	}

	env, err := header.ParseEnvelope(payload)
	if err != nil {
		return c.fail(err)
	}

	if _, werr := io.WriteString(w, header.FormatEnvelope(env)); werr != nil {
		return c.fail(imap.Wrap(imap.TCPConnection, werr))
	}

	c.state = Selected
	return nil
}
