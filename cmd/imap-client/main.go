// Command imap-client is a single-shot, read-only IMAP4rev1 client: one
// invocation logs in, selects a folder, performs one of
// retrieve|parse|mime|list against a single message or the whole
// mailbox, and exits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"imap-client/internal/client"
	"imap-client/internal/cliconfig"
	"imap-client/internal/imap"
)

const usage = `usage: imap-client [-t] -u <user> -p <pass> [-f <folder>] [-n <msg-num>] <command> <server>

commands: retrieve | parse | mime | list
`

// duplicateString is a flag.Value that rejects being set more than once,
// forwarding each value into the cliconfig.Builder under key.
type duplicateString struct {
	builder *cliconfig.Builder
	key     string
}

func (d *duplicateString) String() string { return "" }
func (d *duplicateString) Set(v string) error {
	return d.builder.Set(d.key, v)
}

// duplicateBool is the -t flag: a boolean flag.Value that also rejects
// being set more than once.
type duplicateBool struct {
	builder *cliconfig.Builder
}

func (d *duplicateBool) String() string   { return "false" }
func (d *duplicateBool) IsBoolFlag() bool { return true }
func (d *duplicateBool) Set(v string) error {
	return d.builder.SetTLS(v == "true")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return 1
	}

	c, err := client.Connect(cfg.Server, cfg.TLS, logger)
	if err != nil {
		logger.Error("connect failed", "err", err)
		return 1
	}
	defer c.Close()

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		fmt.Fprintln(stderr, "Login failure")
		return 3
	}

	if err := c.SelectFolder(cfg.Folder); err != nil {
		fmt.Fprintln(stderr, "Folder not found")
		return 3
	}

	switch cfg.Command {
	case cliconfig.CmdRetrieve:
		if err := c.Retrieve(stdout, cfg.MessageNum); err != nil {
			return exitForFetchError(stderr)
		}
	case cliconfig.CmdParse:
		if err := c.Parse(stdout, cfg.MessageNum); err != nil {
			return exitForFetchError(stderr)
		}
	case cliconfig.CmdMime:
		if err := c.Mime(stdout, cfg.MessageNum); err != nil {
			return exitForMimeError(stderr, err)
		}
	case cliconfig.CmdList:
		if err := c.List(stdout); err != nil {
			fmt.Fprintln(stderr, "Server communication error")
			return 3
		}
	}

	return 0
}

// parseArgs parses the CLI surface into a validated Config. Unknown
// flags are rejected by the flag package itself (ContinueOnError mode);
// a flag given more than once is rejected by the Builder, which each
// flag's Set forwards into.
func parseArgs(args []string) (*cliconfig.Config, error) {
	builder := cliconfig.NewBuilder()
	fs := flag.NewFlagSet("imap-client", flag.ContinueOnError)

	fs.Var(&duplicateString{builder, "username"}, "u", "username")
	fs.Var(&duplicateString{builder, "password"}, "p", "password")
	fs.Var(&duplicateString{builder, "folder"}, "f", "folder (default Inbox)")
	fs.Var(&duplicateString{builder, "message_num"}, "n", "message sequence number (default last)")
	fs.Var(&duplicateBool{builder}, "t", "use TLS (accepted, not negotiated)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return nil, fmt.Errorf("expected <command> <server>, got %d positional argument(s)", len(rest))
	}

	if err := builder.Set("command", rest[0]); err != nil {
		return nil, err
	}
	if err := builder.Set("server", rest[1]); err != nil {
		return nil, err
	}

	return builder.Build()
}

func exitForFetchError(stderr *os.File) int {
	fmt.Fprintln(stderr, "Message not found")
	return 3
}

func exitForMimeError(stderr *os.File, err error) int {
	switch {
	case imap.Is(err, imap.MessageNotFound):
		fmt.Fprintln(stderr, "Message not found")
		return 3
	case imap.Is(err, imap.MalformedHeader):
		fmt.Fprintln(stderr, "Header doesn't contain fields, matching failed")
		return 4
	case imap.Is(err, imap.MimeMatchFail):
		fmt.Fprintln(stderr, "Could not match a message")
		return 4
	case imap.Is(err, imap.MimeHeaderMatchFail):
		fmt.Fprintln(stderr, "Could not match header")
		return 4
	default:
		fmt.Fprintln(stderr, "Server communication error")
		return 3
	}
}
