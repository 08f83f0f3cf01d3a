package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// TimestampLayout is the text form of server-assigned timestamps: ISO-8601 in
// UTC with microsecond precision and a "Z" suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// layouts accepted when resolving client or stored text to an instant.
// Zone-less layouts are interpreted as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is the single representation of submittedAt used inside the
// application. It carries the instant when one is known and, for values that
// arrived as text, the text itself so that it is written back unchanged.
type Timestamp struct {
	t   time.Time
	raw string
	// literal marks raw as a non-string JSON value (number, bool, object,
	// array) that is written back unquoted.
	literal bool
}

// NewTimestamp returns a server-side timestamp for t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Microsecond)}
}

// ParseTimestamp keeps s verbatim and resolves it to an instant when it
// matches one of the supported ISO-8601 layouts.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{raw: s}
	trimmed := strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			ts.t = t.UTC()
			break
		}
	}
	return ts
}

// LiteralTimestamp keeps a non-string JSON value, given as its JSON text, so
// that it is written back with its original type. It never resolves to an
// instant.
func LiteralTimestamp(jsonText string) Timestamp {
	return Timestamp{raw: jsonText, literal: true}
}

// Time returns the instant and whether one could be resolved.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.t, !ts.t.IsZero()
}

func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero() && ts.raw == ""
}

// String returns the stored text for text-sourced values and the
// TimestampLayout rendering otherwise.
func (ts Timestamp) String() string {
	if ts.raw != "" {
		return ts.raw
	}
	if ts.t.IsZero() {
		return ""
	}
	return ts.t.UTC().Format(TimestampLayout)
}

// After reports whether ts is newer than other. Resolved instants compare by
// time and rank ahead of unresolved text; two unresolved values compare by text.
func (ts Timestamp) After(other Timestamp) bool {
	a, aok := ts.Time()
	b, bok := other.Time()
	switch {
	case aok && bok:
		return a.After(b)
	case aok:
		return true
	case bok:
		return false
	default:
		return ts.String() > other.String()
	}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.literal {
		return []byte(ts.raw), nil
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*ts = ParseTimestamp(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*ts = LiteralTimestamp(buf.String())
	return nil
}
