// Package header implements RFC 5322 header-continuation unfolding and
// the envelope/subject extraction specific to this client's fixed set of
// FETCH HEADER.FIELDS requests.
package header

import (
	"strings"

	"imap-client/internal/imap"
)

// Unfold undoes header line continuation: every "\r\n " becomes a single
// space, and every "\r\n\t" becomes a single tab.
func Unfold(s string) string {
	s = strings.ReplaceAll(s, "\r\n ", " ")
	s = strings.ReplaceAll(s, "\r\n\t", "\t")
	return s
}

// NoSubject is the placeholder used when a message has no Subject field.
const NoSubject = "<No subject>"

// Envelope holds the four fields this client extracts from a
// HEADER.FIELDS (FROM TO DATE SUBJECT) FETCH response.
type Envelope struct {
	From    string
	To      string
	Date    string
	Subject string
}

// ParseEnvelope parses an unfolded, CRLF-delimited header block into an
// Envelope. Field names are case-insensitive; an unrecognized field name
// or a field missing ": " fails with MalformedHeader. From and Date are
// required; To and Subject default to empty (Subject's presentation
// default is applied by the caller, not here).
func ParseEnvelope(payload []byte) (Envelope, error) {
	unfolded := Unfold(string(payload))
	var env Envelope
	var haveFrom, haveDate bool

	for _, field := range splitFields(unfolded) {
		if field == "" {
			continue
		}
		name, value, err := splitField(field)
		if err != nil {
			return Envelope{}, err
		}
		switch strings.ToLower(name) {
		case "from":
			env.From = value
			haveFrom = true
		case "to":
			env.To = value
		case "date":
			env.Date = value
			haveDate = true
		case "subject":
			env.Subject = value
		default:
			return Envelope{}, imap.New(imap.MalformedHeader, "unknown field: "+name)
		}
	}

	if !haveFrom || !haveDate {
		return Envelope{}, imap.New(imap.MalformedHeader, "missing required field")
	}

	return env, nil
}

// ExtractSubject parses a single HEADER.FIELDS (SUBJECT) payload and
// returns its Subject value, or NoSubject if the field is absent. An
// unrecognized field name still fails with MalformedHeader.
func ExtractSubject(payload []byte) (string, error) {
	unfolded := Unfold(string(payload))
	subject := ""
	found := false

	for _, field := range splitFields(unfolded) {
		if field == "" {
			continue
		}
		name, value, err := splitField(field)
		if err != nil {
			return "", err
		}
		if !strings.EqualFold(name, "subject") {
			return "", imap.New(imap.MalformedHeader, "unknown field: "+name)
		}
		subject = value
		found = true
	}

	if !found {
		return NoSubject, nil
	}
	return subject, nil
}

func splitFields(s string) []string {
	return strings.Split(strings.TrimRight(s, "\r\n"), "\r\n")
}

func splitField(field string) (name, value string, err error) {
	idx := strings.Index(field, ": ")
	if idx < 0 {
		return "", "", imap.New(imap.MalformedHeader, "missing ': ' separator")
	}
	return field[:idx], field[idx+2:], nil
}

// FormatEnvelope renders env in its fixed presentation form, including
// the deliberate asymmetry on the To: line (no leading space when To is
// absent) and the Subject default.
func FormatEnvelope(env Envelope) string {
	subject := env.Subject
	if subject == "" {
		subject = NoSubject
	}

	var to string
	if env.To != "" {
		to = " " + env.To
	}

	var b strings.Builder
	b.WriteString("From: " + env.From + "\n")
	b.WriteString("To:" + to + "\n")
	b.WriteString("Date: " + env.Date + "\n")
	b.WriteString("Subject: " + subject + "\n")
	return b.String()
}
