package imap

import "strings"

// IntoQuoted encodes s as an IMAP quoted string: backslashes are doubled,
// double quotes are backslash-escaped, and the result is wrapped in
// double quotes. This client never emits synchronizing literals for
// command arguments, so quoting is the only encoding it needs.
func IntoQuoted(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
