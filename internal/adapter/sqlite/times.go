package sqlite

import "time"

// timeLayout is RFC3339 with fixed millisecond precision in UTC. The fixed
// width keeps lexicographic order of the TEXT columns identical to
// chronological order, which the (contact_id, occurred_at) index relies on.
const timeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// FormatTimePtr renders an optional timestamp; nil stays NULL.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// ParseTime reads a stored timestamp. Stored values are always written by
// FormatTime, but RFC3339 values from older files parse too.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseTimePtr reads an optional stored timestamp; NULL stays nil.
func ParseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
