package business_day

import (
	"time"

	"github.com/klokku/prazos/pkg/holiday"
)

// MaxBusinessDays bounds the offset a single add or subtract moves. Larger offsets are clamped.
const MaxBusinessDays = 10000

// Arithmetic steps over calendar dates counting only business days of a holiday.Calendar.
// Stepping is linear in n, which stays small (SLA-sized) in practice.
type Arithmetic struct {
	calendar *holiday.Calendar
}

func NewArithmetic(calendar *holiday.Calendar) *Arithmetic {
	return &Arithmetic{calendar: calendar}
}

func (a *Arithmetic) Calendar() *holiday.Calendar {
	return a.calendar
}

// DateOf returns the calendar date of t in the organisation's timezone.
func (a *Arithmetic) DateOf(t time.Time) holiday.CalendarDate {
	return a.calendar.DateOf(t)
}

// AddBusinessDays returns the date n business days after date. n == 0 returns date unchanged,
// even when date itself is not a business day. Negative n counts backwards. |n| is clamped to
// MaxBusinessDays.
func (a *Arithmetic) AddBusinessDays(date holiday.CalendarDate, n int, extra holiday.Dates) holiday.CalendarDate {
	if n < 0 {
		return a.step(date, clampOffset(n), -1, extra)
	}
	return a.step(date, clampOffset(n), 1, extra)
}

// SubtractBusinessDays returns the date n business days before date. Negative n counts forwards.
func (a *Arithmetic) SubtractBusinessDays(date holiday.CalendarDate, n int, extra holiday.Dates) holiday.CalendarDate {
	if n < 0 {
		return a.step(date, clampOffset(n), 1, extra)
	}
	return a.step(date, clampOffset(n), -1, extra)
}

// ValidOffset reports whether n is within the range add and subtract honour without clamping.
func ValidOffset(n int) bool {
	return n >= -MaxBusinessDays && n <= MaxBusinessDays
}

// clampOffset returns |n| capped at MaxBusinessDays. It never negates n, so math.MinInt is safe.
func clampOffset(n int) int {
	if n > MaxBusinessDays || n < -MaxBusinessDays {
		return MaxBusinessDays
	}
	if n < 0 {
		return -n
	}
	return n
}

// NextBusinessDay returns the first business day strictly after date.
func (a *Arithmetic) NextBusinessDay(date holiday.CalendarDate, extra holiday.Dates) holiday.CalendarDate {
	return a.step(date, 1, 1, extra)
}

// PreviousBusinessDay returns the last business day strictly before date.
func (a *Arithmetic) PreviousBusinessDay(date holiday.CalendarDate, extra holiday.Dates) holiday.CalendarDate {
	return a.step(date, 1, -1, extra)
}

// BusinessDaysDiff counts the business days in (from, to]. It is 0 when to is not after from.
func (a *Arithmetic) BusinessDaysDiff(from, to holiday.CalendarDate, extra holiday.Dates) int {
	if !from.IsValid() || !to.IsValid() || !to.After(from) {
		return 0
	}
	count := 0
	for d := from.AddDays(1); !d.After(to); d = d.AddDays(1) {
		if a.calendar.IsBusinessDay(d, extra) {
			count++
		}
	}
	return count
}

// CalendarDaysDiff is the absolute number of whole days between the two dates.
func (a *Arithmetic) CalendarDaysDiff(from, to holiday.CalendarDate) int {
	return CalendarDaysDiff(from, to)
}

func CalendarDaysDiff(from, to holiday.CalendarDate) int {
	days := from.DaysUntil(to)
	if days < 0 {
		return -days
	}
	return days
}

func (a *Arithmetic) step(date holiday.CalendarDate, n int, direction int, extra holiday.Dates) holiday.CalendarDate {
	if n == 0 || !date.IsValid() {
		return date
	}
	current := date
	for counted := 0; counted < n; {
		current = current.AddDays(direction)
		if a.calendar.IsBusinessDay(current, extra) {
			counted++
		}
	}
	return current
}
