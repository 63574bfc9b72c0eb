package holiday

import (
	"fmt"
	"strings"
	"time"
)

// normalizationHour is the hour every CalendarDate is pinned to when it is turned back into
// an instant. Midday keeps daylight-saving shifts from moving the date.
const normalizationHour = 12

const isoDateLayout = "2006-01-02"

// CalendarDate is a year/month/day without time of day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the CalendarDate for the given components, normalizing overflowing values
// the way time.Date does (e.g. February 30 becomes March 1 or 2).
func NewDate(year int, month time.Month, day int) CalendarDate {
	t := time.Date(year, month, day, normalizationHour, 0, 0, 0, time.UTC)
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf returns the calendar date of t as observed in loc. A nil loc uses t's own location.
func DateOf(t time.Time, loc *time.Location) CalendarDate {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseDate parses "YYYY-MM-DD" or an RFC 3339 timestamp. Timestamps keep the date as written
// in their own offset. The second result is false for anything it cannot parse.
func ParseDate(value string) (CalendarDate, bool) {
	return ParseDateIn(value, nil)
}

// ParseDateIn is ParseDate, but RFC 3339 timestamps are converted to loc before the date is taken.
func ParseDateIn(value string, loc *time.Location) (CalendarDate, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CalendarDate{}, false
	}
	if t, err := time.Parse(isoDateLayout, value); err == nil {
		return DateOf(t, nil), true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return CalendarDate{}, false
	}
	return DateOf(t, loc), true
}

// IsValid reports whether d names a real day of the Gregorian calendar.
func (d CalendarDate) IsValid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return NewDate(d.Year, d.Month, d.Day) == d
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Time returns the date at the normalization hour in loc (UTC when loc is nil).
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, normalizationHour, 0, 0, 0, loc)
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d CalendarDate) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddDays moves the date by n calendar days (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewDate(d.Year, d.Month, d.Day+n)
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the signed number of calendar days from d to other.
func (d CalendarDate) DaysUntil(other CalendarDate) int {
	return int((other.Time(time.UTC).Unix() - d.Time(time.UTC).Unix()) / secondsPerDay)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return compareInts(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInts(int(d.Month), int(other.Month))
	default:
		return compareInts(d.Day, other.Day)
	}
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// String returns the ISO 8601 form, e.g. "2025-04-18".
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, ok := ParseDate(string(text))
	if !ok {
		return fmt.Errorf("invalid calendar date: %q", string(text))
	}
	*d = parsed
	return nil
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
