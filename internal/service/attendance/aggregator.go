package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
)

// eventDateLayouts are tried in order. Layouts without a zone parse as UTC;
// timestamps with an offset keep it, so the month is the one local to the event.
var eventDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

var errEmptyDate = errors.New("empty date")

// ParseEventDate parses a stored attendance date (calendar date or ISO-8601 timestamp).
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errEmptyDate
	}

	var firstErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// DatedEvent is an event whose date has been parsed.
type DatedEvent struct {
	attendance.Event
	Day time.Time
}

// FilterMonth keeps the events dated inside (year, month). Events whose date
// cannot be parsed are excluded and reported as warnings, in input order.
func FilterMonth(events []attendance.Event, year, month int) ([]DatedEvent, []attendance.ParseWarning) {
	var (
		kept     []DatedEvent
		warnings []attendance.ParseWarning
	)

	for i, ev := range events {
		day, err := ParseEventDate(ev.Date)
		if err != nil {
			warnings = append(warnings, attendance.ParseWarning{Index: i, Date: ev.Date, Err: err})
			continue
		}
		if day.Year() != year || int(day.Month()) != month {
			continue
		}
		kept = append(kept, DatedEvent{Event: ev, Day: day})
	}
	return kept, warnings
}

// PresentDays counts the distinct calendar days in (year, month) carrying a
// presence status. Several events on the same day count once.
func PresentDays(events []attendance.Event, year, month int) (int, []attendance.ParseWarning) {
	monthEvents, warnings := FilterMonth(events, year, month)

	seen := make(map[string]struct{}, len(monthEvents))
	for _, ev := range monthEvents {
		if !ev.Status.IsPresence() {
			continue
		}
		seen[ev.Day.Format("2006-01-02")] = struct{}{}
	}
	return len(seen), warnings
}

// WarningMessages flattens parse warnings for JSON responses and logs.
func WarningMessages(warnings []attendance.ParseWarning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Error()
	}
	return out
}
