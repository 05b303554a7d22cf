package client

import (
	"io"
	"strconv"
	"strings"

	"imap-client/internal/bodystructure"
	"imap-client/internal/header"
	"imap-client/internal/imap"
)

// Mime validates the MIME-Version/Content-Type headers, walks
// BODYSTRUCTURE to find the first text/plain part, then fetches and
// emits that part verbatim.
func (c *Client) Mime(w io.Writer, n string) error {
	if c.state != Selected {
		return imap.New(imap.Infallible, "Mime called outside Selected state")
	}
	c.state = Operating

	if err := c.mimeValidateHeader(n); err != nil {
		return c.fail(err)
	}

	idx, err := c.mimeFindPlainTextIndex(n)
	if err != nil {
		return c.fail(err)
	}

	if err := c.mimeFetchPart(w, n, idx); err != nil {
		return c.fail(err)
	}

	c.state = Selected
	return nil
}

func (c *Client) mimeValidateHeader(n string) error {
	group, err := c.engine.SendCommand(imap.TagMimeHeader, "FETCH", n,
		"BODY.PEEK[HEADER.FIELDS (MIME-Version Content-type)]")
	if err != nil {
		return err
	}
	if err := imap.CheckSuccess(imap.TagMimeHeader, group); err != nil {
		c.logger.Warn("mime header fetch failed", "msg", n)
		return imap.New(imap.MessageNotFound, "mime: "+err.Error())
	}

	payload, err := literalPayload(group)
	if err != nil {
		return err
	}

	fields, err := splitTwoFields(header.Unfold(string(payload)))
	if err != nil {
		return err
	}

	var mimeVersion, contentType string
	for name, value := range fields {
		switch strings.ToLower(name) {
		case "mime-version":
			mimeVersion = value
		case "content-type":
			contentType = value
		}
	}

	if !strings.Contains(mimeVersion, "1.0") {
		return imap.New(imap.MimeHeaderMatchFail, "MIME-Version does not contain 1.0")
	}
	if !strings.Contains(contentType, "multipart/alternative; boundary=") {
		return imap.New(imap.MimeHeaderMatchFail, "Content-Type is not multipart/alternative")
	}
	return nil
}

func (c *Client) mimeFindPlainTextIndex(n string) (int, error) {
	group, err := c.engine.SendCommand(imap.TagMimeBodystruct, "FETCH", n, "BODYSTRUCTURE")
	if err != nil {
		return 0, err
	}
	if err := imap.CheckSuccess(imap.TagMimeBodystruct, group); err != nil {
		c.logger.Warn("bodystructure fetch failed", "msg", n)
		return 0, imap.New(imap.MessageNotFound, "mime: "+err.Error())
	}
	if len(group) < 2 {
		return 0, imap.New(imap.Infallible, "expected untagged BODYSTRUCTURE data")
	}
	return bodystructure.FindPlainTextPart(group[0])
}

func (c *Client) mimeFetchPart(w io.Writer, n string, idx int) error {
	group, err := c.engine.SendCommand(imap.TagMime, "FETCH", n, "BODY.PEEK["+strconv.Itoa(idx)+"]")
	if err != nil {
		return err
	}
	if err := imap.CheckSuccess(imap.TagMime, group); err != nil {
		c.logger.Warn("mime part fetch failed", "msg", n, "part", idx)
		return imap.New(imap.MessageNotFound, "mime: "+err.Error())
	}

	payload, err := literalPayload(group)
	if err != nil {
		return err
	}

	if _, werr := w.Write(payload); werr != nil {
		return imap.Wrap(imap.TCPConnection, werr)
	}
	return nil
}

// splitTwoFields splits an unfolded header block into exactly two
// name/value fields.
func splitTwoFields(unfolded string) (map[string]string, error) {
	lines := strings.Split(strings.TrimRight(unfolded, "\r\n"), "\r\n")
	fields := make(map[string]string, 2)
	for _, line := range lines {
		if line == "" {
			continue
		}
		idx := strings.Index(line, ": ")
		if idx < 0 {
			return nil, imap.New(imap.MalformedHeader, "missing ': ' separator")
		}
		fields[line[:idx]] = line[idx+2:]
	}
	if len(fields) != 2 {
		return nil, imap.New(imap.MimeHeaderMatchFail, "expected exactly two header fields")
	}
	return fields, nil
}
