package imap

import "testing"

// These scenarios mirror the literal shapes this client actually sends
// and receives: a LOGIN/SELECT command never carries one, a FETCH
// response almost always does, and a server advertising LITERAL+ is
// still handled even though this client never emits a non-synchronizing
// literal of its own.
func TestParseLiteralFetchResponse(t *testing.T) {
	n, nonSync, ok := ParseLiteral([]byte("* 1 FETCH (BODY[] {5}\r\n"))
	if !ok || n != 5 || nonSync {
		t.Fatalf("got n=%d nonSync=%v ok=%v, want n=5 nonSync=false ok=true", n, nonSync, ok)
	}
}

func TestParseLiteralNonSynchronizing(t *testing.T) {
	n, nonSync, ok := ParseLiteral([]byte("* 1 FETCH (BODY[HEADER] {42+}\r\n"))
	if !ok || n != 42 || !nonSync {
		t.Fatalf("got n=%d nonSync=%v ok=%v, want n=42 nonSync=true ok=true", n, nonSync, ok)
	}
}

func TestParseLiteralZeroLength(t *testing.T) {
	n, _, ok := ParseLiteral([]byte("* 2 FETCH (BODY[HEADER.FIELDS (SUBJECT)] {0}\r\n"))
	if !ok || n != 0 {
		t.Fatalf("got n=%d ok=%v, want n=0 ok=true", n, ok)
	}
}

func TestParseLiteralNoMarker(t *testing.T) {
	if _, _, ok := ParseLiteral([]byte("ftag OK SELECT completed\r\n")); ok {
		t.Fatal("tagged completion line carries no literal, want ok=false")
	}
}

func TestParseLiteralNotAnchoredAtEnd(t *testing.T) {
	// A literal marker followed by other bytes (the framer's own appended
	// payload, say) no longer anchors the line; ParseLiteral requires the
	// marker at the very end and LiteralOffset exists for this shape.
	if _, _, ok := ParseLiteral([]byte("* 1 FETCH (BODY[] {5}\r\nhello)\r\n")); ok {
		t.Fatal("literal not anchored at line end, want ok=false")
	}
}

func TestParseLiteralRejectsGarbageDigits(t *testing.T) {
	cases := []string{
		"A001 APPEND INBOX {}\r\n",
		"A001 APPEND INBOX {abc}\r\n",
		"A001 APPEND INBOX {+}\r\n",
		"A001 APPEND INBOX {-1}\r\n",
		"A001 APPEND INBOX 26}\r\n",
		"A001 APPEND INBOX {26\r\n",
		"\r\n",
		"",
	}
	for _, c := range cases {
		if _, _, ok := ParseLiteral([]byte(c)); ok {
			t.Errorf("ParseLiteral(%q) = ok, want rejected", c)
		}
	}
}

func TestParseLiteralToleratesMissingCRLF(t *testing.T) {
	// readLine can hand back a line ending in a bare LF; the brace scan
	// doesn't depend on CRLF being present, or on any line terminator.
	for _, c := range []string{"A001 APPEND INBOX {5}", "A001 APPEND INBOX {5}\n"} {
		n, _, ok := ParseLiteral([]byte(c))
		if !ok || n != 5 {
			t.Errorf("ParseLiteral(%q) = n=%d ok=%v, want n=5 ok=true", c, n, ok)
		}
	}
}

func TestLiteralOffsetLocatesMidLinePayload(t *testing.T) {
	line := []byte("* 1 FETCH (BODY[] {5}\r\nhello)\r\n")
	offset, length, ok := LiteralOffset(line)
	if !ok {
		t.Fatal("expected a literal")
	}
	if length != 5 {
		t.Errorf("length = %d, want 5", length)
	}
	if got := string(line[offset : offset+int(length)]); got != "hello" {
		t.Errorf("payload = %q, want %q", got, "hello")
	}
}

func TestLiteralOffsetZeroLengthPayload(t *testing.T) {
	line := []byte("* 2 FETCH (BODY[HEADER.FIELDS (SUBJECT)] {0}\r\n")
	offset, length, ok := LiteralOffset(line)
	if !ok || length != 0 {
		t.Fatalf("got offset=%d length=%d ok=%v, want length=0 ok=true", offset, length, ok)
	}
	if offset != len(line) {
		t.Errorf("offset = %d, want %d (end of line)", offset, len(line))
	}
}

func TestLiteralOffsetNoMarker(t *testing.T) {
	if _, _, ok := LiteralOffset([]byte("A001 OK SELECT completed\r\n")); ok {
		t.Fatal("expected no literal")
	}
}

func TestLiteralOffsetRequiresCRLFTerminator(t *testing.T) {
	// A brace pair that isn't immediately followed by "}\r\n" isn't a
	// literal marker at all, just a literal '{' and '}' in free text.
	if _, _, ok := LiteralOffset([]byte("Subject: {5} not a literal\r\n")); ok {
		t.Fatal("brace pair without CRLF terminator should not match")
	}
}
