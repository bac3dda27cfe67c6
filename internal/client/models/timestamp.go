package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DayLayout is the calendar-day form the list endpoint expects.
	DayLayout = "Mon Jan 02 2006"
	// ISOLayout is the UTC millisecond form used for slice times on the wire.
	ISOLayout = "2006-01-02T15:04:05.000Z"
	// DisplayLayout is how slice times are shown to the user.
	DisplayLayout = "01/02/2006 15:04"
)

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is the time a slice is anchored to. It decodes RFC3339 strings,
// a few looser ISO forms, and millisecond epoch numbers.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func ParseTime(v string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", v)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(ISOString(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if len(b) > 0 && b[0] != '"' {
		var ms json.Number
		if err := json.Unmarshal(b, &ms); err != nil {
			return err
		}
		v, err := ms.Int64()
		if err != nil {
			return fmt.Errorf("time must be integer milliseconds: %w", err)
		}
		t.Time = time.UnixMilli(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// String renders the time for display in local time.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DisplayLayout)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DayString formats the local calendar day of t for the list endpoint.
func DayString(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ISOString formats t in UTC with millisecond precision.
func ISOString(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
