// Package bodystructure walks an IMAP BODYSTRUCTURE response to locate
// the first text/plain MIME part.
package bodystructure

import (
	"bytes"

	"imap-client/internal/imap"
)

// plainTextMarkers are the three recognized text/plain descriptors.
// The earliest-occurring match among all three wins.
var plainTextMarkers = [][]byte{
	[]byte(`("text" "plain" ("charset" "UTF-8") NIL NIL "quoted-printable"`),
	[]byte(`("text" "plain" ("charset" "UTF-8") NIL NIL "7bit"`),
	[]byte(`("text" "plain" ("charset" "UTF-8") NIL NIL "8bit"`),
}

// FindPlainTextPart scans line for the earliest occurrence of any
// recognized text/plain descriptor and returns the 1-based body-part
// index: the count of ")(" sibling separators in the prefix up to and
// including the match, plus one.
func FindPlainTextPart(line []byte) (int, error) {
	matchStart := -1
	for _, marker := range plainTextMarkers {
		if idx := bytes.Index(line, marker); idx >= 0 {
			if matchStart < 0 || idx < matchStart {
				matchStart = idx
			}
		}
	}
	if matchStart < 0 {
		return 0, imap.New(imap.MimeMatchFail, "no recognized text/plain part in BODYSTRUCTURE")
	}

	// The matched descriptor's own leading "(" is the second half of the
	// ")(" separator from the preceding sibling part whenever one exists,
	// so the prefix must include matchStart itself, not stop short of it.
	prefix := line[:matchStart+1]
	k := bytes.Count(prefix, []byte(")("))
	return k + 1, nil
}
