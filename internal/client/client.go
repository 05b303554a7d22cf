// Package client implements the per-connection IMAP session: dialing the
// server, walking the Fresh→Authenticated→Selected→Operating→Closed
// state machine, and the operation handlers built on internal/imap's
// wire engine.
package client

import (
	"bufio"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"

	"imap-client/internal/imap"
)

// Client owns a single blocking connection to one IMAP server. It is not
// reused across operations beyond the lifetime of one invocation, and it
// is not safe for concurrent use: exactly one command is ever in flight.
type Client struct {
	conn   net.Conn
	engine *imap.Engine
	state  State
	logger *slog.Logger
	connID string
}

// Connect dials server on port 143, validates the greeting line, and
// returns a Client in state Fresh. tls is accepted on the CLI surface
// but TLS negotiation is out of core scope; the connection is always
// made in cleartext.
func Connect(server string, tls bool, logger *slog.Logger) (*Client, error) {
	connID := uuid.New().String()[:8]
	logger = logger.With("conn", connID)

	if tls {
		logger.Debug("tls flag accepted but not negotiated (out of core scope)")
	}

	addr := net.JoinHostPort(server, "143")
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, imap.Wrap(imap.TCPConnection, err)
	}

	r := bufio.NewReader(conn)
	greeting, err := r.ReadString('\n')
	if err != nil {
		conn.Close()
		return nil, imap.Wrap(imap.TCPConnection, err)
	}
	if !strings.HasPrefix(greeting, "* OK") && !strings.HasPrefix(greeting, "* PREAUTH") {
		conn.Close()
		return nil, imap.New(imap.TCPConnection, "unexpected greeting: "+strings.TrimRight(greeting, "\r\n"))
	}

	logger.Info("connected", "server", server)

	return &Client{
		conn:   conn,
		engine: imap.NewEngine(bufio.NewWriter(conn), r),
		state:  Fresh,
		logger: logger,
		connID: connID,
	}, nil
}

// Close releases the underlying connection and transitions to Closed.
func (c *Client) Close() error {
	c.state = Closed
	return c.conn.Close()
}

// State reports the client's current lifecycle state.
func (c *Client) State() State { return c.state }

func (c *Client) fail(err error) error {
	c.state = Closed
	return err
}
