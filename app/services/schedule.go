package services

import "time"

// Unix timestamp decoding is UTC-anchored. Earlier revisions of this
// surface anchored the epoch at the server's current local offset, which
// shifted decoded instants across DST changes; callers now always get
// the epoch-correct instant in UTC.

// FromUnixSeconds decodes a unix-seconds timestamp.
func FromUnixSeconds(n int64) time.Time {
	return time.Unix(n, 0).UTC()
}

// FromUnixMillis decodes a JavaScript-style unix-milliseconds timestamp.
func FromUnixMillis(n int64) time.Time {
	return time.UnixMilli(n).UTC()
}

// WithDate replaces the calendar date of t with d's year, month and day,
// keeping t's time-of-day and location untouched.
func WithDate(t, d time.Time) time.Time {
	year, month, day := d.Date()
	return time.Date(year, month, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
