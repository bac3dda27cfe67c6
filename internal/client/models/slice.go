package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Slice is a single journal entry as the server returns it.
type Slice struct {
	ID      SliceID   `json:"id"`
	Content string    `json:"content"`
	Time    Timestamp `json:"time"`
}

// Blank reports whether content has nothing but whitespace. Blank content
// is never sent to the server.
func Blank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// SliceID is the opaque identifier the server assigns to a slice. Servers
// may send it as a JSON string or a JSON number; the form is remembered so
// the id goes back over the wire exactly as it came.
type SliceID struct {
	raw     string
	numeric bool
}

// ID makes a string-form identifier.
func ID(s string) SliceID {
	return SliceID{raw: s}
}

func (id SliceID) String() string { return id.raw }

func (id SliceID) IsZero() bool { return id.raw == "" }

func (id SliceID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *SliceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = SliceID{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = SliceID{raw: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("slice id must be a string or a number: %w", err)
	}
	*id = SliceID{raw: n.String(), numeric: true}
	return nil
}
