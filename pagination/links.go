package pagination

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Link is a named, fully qualified navigation URL.
type Link struct {
	Rel Rel
	URL string
}

// LinkSet is the ordered result of a build. It may be empty.
type LinkSet []Link

// Get returns the URL for rel.
func (s LinkSet) Get(rel Rel) (string, bool) {
	for _, l := range s {
		if l.Rel == rel {
			return l.URL, true
		}
	}

	return "", false
}

// MarshalJSON writes the set as a JSON object keyed by rel, keeping the set's
// order. An empty set is {}.
func (s LinkSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, string(l.Rel)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, l.URL); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeString encodes s as a JSON string without escaping '&' and friends,
// which every query string is full of.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))

	return nil
}

// UnmarshalJSON reads a JSON object of rel to URL, keeping the document order.
func (s *LinkSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("links: expected object, got %v", tok)
	}

	out := LinkSet{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		rel, _ := tok.(string)

		var u string
		if err := dec.Decode(&u); err != nil {
			return fmt.Errorf("links: decoding %q: %w", rel, err)
		}
		out = append(out, Link{Rel: Rel(rel), URL: u})
	}
	*s = out

	return nil
}

// Header renders the set as an RFC 8288 Link header value.
func (s LinkSet) Header() string {
	parts := make([]string, 0, len(s))
	for _, l := range s {
		parts = append(parts, fmt.Sprintf(`<%s>; rel="%s"`, l.URL, l.Rel))
	}

	return strings.Join(parts, ", ")
}
