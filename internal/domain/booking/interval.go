package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/campus-halls/service-booking/internal/domain"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// TimeOfDay is a time within a day, in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" or "HH:MM:SS" string. Seconds are
// truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, domain.NewValidationError(fmt.Sprintf("invalid time of day: %q", s))
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, domain.NewValidationError(fmt.Sprintf("invalid time of day: %q", s))
	}
	return TimeOfDay(h*60 + m), nil
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON renders the time as a quoted "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a quoted "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is a half-open time range [Start, End) within a single day.
// Two intervals sharing an exact boundary do not overlap.
type Interval struct {
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// NewInterval builds a strictly ordered half-open interval. A zero-length
// or inverted range is rejected.
func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, &domain.InvalidIntervalError{Start: start.String(), End: end.String()}
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval parses "HH:MM" start and end strings into an Interval.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

// Overlaps reports whether the two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return other.Start < iv.End && other.End > iv.Start
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.End-iv.Start) * time.Minute
}

// String renders the interval as "HH:MM-HH:MM".
func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// ParseDate parses a "YYYY-MM-DD" string into a normalized calendar day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid date: %q", s))
	}
	return d, nil
}

// NormalizeDate truncates a timestamp to its UTC calendar day. Booking
// dates are compared by exact day equality, so every date entering the
// domain goes through this first.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
