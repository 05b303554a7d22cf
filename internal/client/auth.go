package client

import "imap-client/internal/imap"

// Login sends LOGIN with quoted username/password and transitions to
// Authenticated on success. A non-OK completion moves the client to
// Closed and is surfaced to the caller as CommandFailed.
func (c *Client) Login(username, password string) error {
	if c.state != Fresh {
		return imap.New(imap.Infallible, "Login called outside Fresh state")
	}

	group, err := c.engine.SendCommand(imap.TagLogin, "LOGIN",
		imap.IntoQuoted(username), imap.IntoQuoted(password))
	if err != nil {
		return c.fail(err)
	}
	if err := imap.CheckSuccess(imap.TagLogin, group); err != nil {
		c.logger.Warn("login failed")
		return c.fail(err)
	}

	c.state = Authenticated
	c.logger = c.logger.With("user", username)
	c.logger.Info("login successful")
	return nil
}
