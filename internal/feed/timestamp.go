package feed

import (
	"net/mail"
	"strings"
	"time"
)

// isoLayouts are tried in order for ISO-8601 style inputs. Layouts without a
// zone are treated as naive and assumed UTC.
var isoLayouts = []struct {
	layout string
	naive  bool
}{
	{layout: time.RFC3339Nano},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05.999999999", naive: true},
	{layout: "2006-01-02T15:04:05", naive: true},
	{layout: "2006-01-02T15:04", naive: true},
	{layout: "2006-01-02 15:04:05.999999999Z07:00"},
	{layout: "2006-01-02 15:04:05.999999999", naive: true},
	{layout: "2006-01-02 15:04:05", naive: true},
	{layout: "2006-01-02 15:04", naive: true},
}

// ParseTimestamp normalizes a heterogeneous date string to a UTC instant.
// ISO-8601 forms are tried first, then RFC 822/2822 (email-header style).
// Blank or unparseable input yields nil; this function never fails the
// caller, so malformed dates degrade to "unknown time" instead of blocking
// ingestion.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, l := range isoLayouts {
		if l.naive {
			if t, err := time.ParseInLocation(l.layout, value, time.UTC); err == nil {
				utc := t.UTC()
				return &utc
			}
			continue
		}
		if t, err := time.Parse(l.layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}

	if t, err := mail.ParseDate(value); err == nil {
		utc := t.UTC()
		return &utc
	}

	return nil
}
