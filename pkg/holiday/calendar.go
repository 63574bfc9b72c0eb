package holiday

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTimezone is the organisation's timezone when none is configured.
const DefaultTimezone = "America/Sao_Paulo"

// fallbackOffset is UTC-3, used when the timezone database is not available.
var fallbackOffset = time.FixedZone("BRT", -3*60*60)

// DayInfo breaks a date down into the independent weekend and holiday flags.
type DayInfo struct {
	Date          CalendarDate
	Weekday       time.Weekday
	IsWeekend     bool
	IsHoliday     bool
	IsBusinessDay bool
	HolidayName   string
	// CoincidingHoliday names a holiday falling on this date even when the date is a weekend
	// (and therefore not reported by IsHoliday).
	CoincidingHoliday string
}

// Calendar answers holiday and business-day questions for the Brazilian national calendar in
// one organisation timezone.
type Calendar struct {
	location *time.Location
	cache    *YearCache
}

// NewCalendar creates a calendar for location. A nil cache recomputes holidays on every call.
func NewCalendar(location *time.Location, cache *YearCache) *Calendar {
	if location == nil {
		location = fallbackOffset
	}
	return &Calendar{location: location, cache: cache}
}

// LoadLocation resolves an IANA timezone name, falling back to a fixed UTC-3 offset.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("unable to load timezone %q, using fixed UTC-3 offset: %v", name, err)
		return fallbackOffset
	}
	return loc
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

// DateOf returns the organisation-local calendar date of t.
func (c *Calendar) DateOf(t time.Time) CalendarDate {
	return DateOf(t, c.location)
}

// ParseDate parses an ISO date or timestamp into the organisation-local calendar date.
func (c *Calendar) ParseDate(value string) (CalendarDate, bool) {
	return ParseDateIn(value, c.location)
}

func (c *Calendar) HolidaysForYear(year int) []Holiday {
	if c.cache == nil {
		return HolidaysForYear(year)
	}
	return c.cache.Get(year)
}

// IsHoliday reports whether date is a national or extra holiday. Weekends are never holidays.
func (c *Calendar) IsHoliday(date CalendarDate, extra Dates) bool {
	_, ok := c.HolidayName(date, extra)
	return ok
}

func (c *Calendar) IsBusinessDay(date CalendarDate, extra Dates) bool {
	if !date.IsValid() || date.IsWeekend() {
		return false
	}
	_, onHoliday := c.holidayOn(date, extra)
	return !onHoliday
}

// HolidayName returns the display name of the holiday on date, if date is a holiday.
func (c *Calendar) HolidayName(date CalendarDate, extra Dates) (string, bool) {
	if !date.IsValid() || date.IsWeekend() {
		return "", false
	}
	return c.holidayOn(date, extra)
}

// HolidaysInPeriod lists national and extra holidays within [start, end], ordered by date.
// Weekend holidays are included; the listing is by date, not by business impact.
func (c *Calendar) HolidaysInPeriod(start, end CalendarDate, extra Dates) []Holiday {
	holidays := make([]Holiday, 0)
	if !start.IsValid() || !end.IsValid() || end.Before(start) {
		return holidays
	}
	for year := start.Year; year <= end.Year; year++ {
		for _, h := range c.HolidaysForYear(year) {
			if h.Date.Before(start) || h.Date.After(end) {
				continue
			}
			holidays = append(holidays, h)
		}
	}
	for _, h := range extra.InRange(start, end) {
		if _, national := c.nationalHolidayOn(h.Date); national {
			continue
		}
		holidays = append(holidays, h)
	}
	sortHolidays(holidays)
	return holidays
}

// Describe reports every flag of date at once.
func (c *Calendar) Describe(date CalendarDate, extra Dates) DayInfo {
	info := DayInfo{Date: date}
	if !date.IsValid() {
		return info
	}
	info.Weekday = date.Weekday()
	info.IsWeekend = date.IsWeekend()
	info.CoincidingHoliday, _ = c.holidayOn(date, extra)
	info.HolidayName, info.IsHoliday = c.HolidayName(date, extra)
	info.IsBusinessDay = c.IsBusinessDay(date, extra)
	return info
}

// IsHolidayISO is IsHoliday for an ISO string; invalid input is never a holiday.
func (c *Calendar) IsHolidayISO(value string, extra Dates) bool {
	date, ok := c.ParseDate(value)
	if !ok {
		return false
	}
	return c.IsHoliday(date, extra)
}

// IsBusinessDayISO is IsBusinessDay for an ISO string; invalid input is never a business day.
func (c *Calendar) IsBusinessDayISO(value string, extra Dates) bool {
	date, ok := c.ParseDate(value)
	if !ok {
		return false
	}
	return c.IsBusinessDay(date, extra)
}

func (c *Calendar) HolidayNameISO(value string, extra Dates) (string, bool) {
	date, ok := c.ParseDate(value)
	if !ok {
		return "", false
	}
	return c.HolidayName(date, extra)
}

func (c *Calendar) holidayOn(date CalendarDate, extra Dates) (string, bool) {
	if h, ok := c.nationalHolidayOn(date); ok {
		return h.Name, true
	}
	return extra.Name(date)
}

func (c *Calendar) nationalHolidayOn(date CalendarDate) (Holiday, bool) {
	for _, h := range c.HolidaysForYear(date.Year) {
		if h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}
