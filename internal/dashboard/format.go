package dashboard

import (
	"time"

	"eventsops/cli/internal/forms"
)

// FormatDate renders an ISO timestamp as "May 1, 2025" in local time.
// Unparseable input is returned unchanged.
func FormatDate(s string) string { return formatDate(s, time.Local) }

// FormatDateTime renders an ISO timestamp as "May 1, 2025 at 6:00 PM".
func FormatDateTime(s string) string { return formatDateTime(s, time.Local) }

// FormatDateRange renders a start and end, collapsing to one date with a time
// range when both fall on the same day.
func FormatDateRange(start, end string) string { return formatDateRange(start, end, time.Local) }

func formatDate(s string, loc *time.Location) string {
	t, err := forms.ParseDateTime(s)
	if err != nil {
		return s
	}
	return t.In(loc).Format("Jan 2, 2006")
}

func formatDateTime(s string, loc *time.Location) string {
	t, err := forms.ParseDateTime(s)
	if err != nil {
		return s
	}
	return t.In(loc).Format("January 2, 2006 at 3:04 PM")
}

func formatDateRange(start, end string, loc *time.Location) string {
	st, err1 := forms.ParseDateTime(start)
	en, err2 := forms.ParseDateTime(end)
	if err1 != nil || err2 != nil {
		return start + " - " + end
	}
	st, en = st.In(loc), en.In(loc)

	sy, sm, sd := st.Date()
	ey, em, ed := en.Date()
	if sy == ey && sm == em && sd == ed {
		return st.Format("Jan 2, 2006") + " • " + st.Format("3:04 PM") + " - " + en.Format("3:04 PM")
	}
	return st.Format("Jan 2") + " - " + en.Format("Jan 2, 2006")
}
