package bodystructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"imap-client/internal/imap"
)

func TestFindPlainTextPartS5(t *testing.T) {
	line := []byte(`* 3 FETCH (BODYSTRUCTURE (("text" "html" ("charset" "UTF-8") NIL NIL "7bit" 100 2)(` +
		`"text" "plain" ("charset" "UTF-8") NIL NIL "7bit" 50 1) "alternative"))` + "\r\n")
	idx, err := FindPlainTextPart(line)
	require.NoError(t, err)
	require.Equal(t, 2, idx)
}

func TestFindPlainTextPartQuotedPrintable(t *testing.T) {
	line := []byte(`("text" "plain" ("charset" "UTF-8") NIL NIL "quoted-printable" 10 1)`)
	idx, err := FindPlainTextPart(line)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestFindPlainTextPartNoMatch(t *testing.T) {
	line := []byte(`("text" "html" ("charset" "UTF-8") NIL NIL "7bit" 10 1)`)
	_, err := FindPlainTextPart(line)
	require.Error(t, err)
	require.True(t, imap.Is(err, imap.MimeMatchFail))
}

func TestFindPlainTextPartIndexProperty(t *testing.T) {
	// Property: for a string with k ")(" separators before the first
	// match, the computed index is k+1.
	for k := 0; k < 5; k++ {
		prefix := strings.Repeat("x)(", k)
		marker := `("text" "plain" ("charset" "UTF-8") NIL NIL "8bit"`
		line := []byte(prefix + marker)
		idx, err := FindPlainTextPart(line)
		require.NoError(t, err)
		require.Equal(t, k+1, idx)
	}
}
