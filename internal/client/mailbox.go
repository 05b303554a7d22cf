package client

import "imap-client/internal/imap"

// SelectFolder sends SELECT for folder and transitions to Selected on
// success. folder defaults to "Inbox" at the cliconfig layer, not here.
func (c *Client) SelectFolder(folder string) error {
	if c.state != Authenticated {
		return imap.New(imap.Infallible, "SelectFolder called outside Authenticated state")
	}

	group, err := c.engine.SendCommand(imap.TagSelect, "SELECT", imap.IntoQuoted(folder))
	if err != nil {
		return c.fail(err)
	}
	if err := imap.CheckSuccess(imap.TagSelect, group); err != nil {
		c.logger.Warn("select failed", "folder", folder)
		return c.fail(err)
	}

	c.state = Selected
	c.logger.Info("folder selected", "folder", folder)
	return nil
}
