package viewmodel

import "time"

// FormatDate renders t in loc as e.g. "February 22, 2024 at 04:40 PM".
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("January 2, 2006 at 03:04 PM")
}

// FormatTimestamp parses an article timestamp and formats it with
// FormatDate. Unparseable input is returned unchanged.
func FormatTimestamp(s string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return FormatDate(t, loc)
}
