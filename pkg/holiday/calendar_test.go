package holiday

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location = LoadLocation("America/Sao_Paulo")

func newTestCalendar() *Calendar {
	return NewCalendar(location, NewYearCache())
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want CalendarDate
	}{
		{2019, NewDate(2019, time.April, 21)},
		{2023, NewDate(2023, time.April, 9)},
		{2024, NewDate(2024, time.March, 31)},
		{2025, NewDate(2025, time.April, 20)},
		{2026, NewDate(2026, time.April, 5)},
		{2038, NewDate(2038, time.April, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, EasterSunday(tt.year))
		})
	}
}

func TestEasterSunday_IsAlwaysSundayInRange(t *testing.T) {
	for _, year := range []int{-500, 0, 1, 1583, 1900, 2000, 2100, 9999, 123456} {
		easter := EasterSunday(year)
		assert.Equal(t, year, easter.Year)
		assert.True(t, easter.IsValid(), "year %d", year)
		if year >= 1583 {
			assert.Equal(t, time.Sunday, easter.Weekday(), "year %d", year)
		}
	}
}

func TestHolidaysForYear(t *testing.T) {
	t.Run("should return eight fixed and four movable holidays", func(t *testing.T) {
		for year := 1990; year <= 2060; year++ {
			holidays := HolidaysForYear(year)
			fixed, movable := 0, 0
			for _, h := range holidays {
				assert.Equal(t, year, h.Date.Year)
				switch h.Category {
				case Fixed:
					fixed++
				case Movable:
					movable++
				}
			}
			assert.Equal(t, 8, fixed, "year %d", year)
			assert.Equal(t, 4, movable, "year %d", year)
			assert.Len(t, holidays, 12, "year %d", year)
		}
	})

	t.Run("should not contain duplicate dates", func(t *testing.T) {
		for _, year := range []int{2023, 2024, 2025, 2026, 2027} {
			seen := map[CalendarDate]bool{}
			for _, h := range HolidaysForYear(year) {
				assert.False(t, seen[h.Date], "duplicate %s in %d", h.Date, year)
				seen[h.Date] = true
			}
		}
	})

	t.Run("should derive movable holidays from easter", func(t *testing.T) {
		holidays := HolidaysForYear(2024)
		byName := map[string]CalendarDate{}
		for _, h := range holidays {
			byName[h.Name] = h.Date
		}
		assert.Equal(t, NewDate(2024, time.February, 13), byName["Carnaval"])
		assert.Equal(t, NewDate(2024, time.March, 29), byName["Sexta-feira Santa"])
		assert.Equal(t, NewDate(2024, time.March, 31), byName["Páscoa"])
		assert.Equal(t, NewDate(2024, time.May, 30), byName["Corpus Christi"])
	})

	t.Run("should be ordered by date", func(t *testing.T) {
		holidays := HolidaysForYear(2025)
		for i := 1; i < len(holidays); i++ {
			assert.False(t, holidays[i].Date.Before(holidays[i-1].Date))
		}
	})

	t.Run("should be pure", func(t *testing.T) {
		assert.Equal(t, HolidaysForYear(2031), HolidaysForYear(2031))
	})

	t.Run("should keep both entries when easter falls on tiradentes", func(t *testing.T) {
		holidays := HolidaysForYear(2019)
		require.Len(t, holidays, 12)
		count := 0
		for _, h := range holidays {
			if h.Date == NewDate(2019, time.April, 21) {
				count++
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestCalendar_IsHoliday(t *testing.T) {
	cal := newTestCalendar()
	tests := []struct {
		name  string
		date  CalendarDate
		extra Dates
		want  bool
	}{
		{"new year", NewDate(2024, time.January, 1), Dates{}, true},
		{"christmas", NewDate(2024, time.December, 25), Dates{}, true},
		{"ordinary monday", NewDate(2024, time.January, 15), Dates{}, false},
		{"leap day", NewDate(2024, time.February, 29), Dates{}, false},
		{"carnival tuesday", NewDate(2025, time.March, 4), Dates{}, true},
		{"corpus christi", NewDate(2025, time.June, 19), Dates{}, true},
		{"extra date", NewDate(2025, time.January, 24), NewDates(NewDate(2025, time.January, 24)), true},
		{"christmas on a sunday", NewDate(2022, time.December, 25), Dates{}, false},
		{"tiradentes on a saturday", NewDate(2029, time.April, 21), Dates{}, false},
		{"zero date", CalendarDate{}, Dates{}, false},
		{"invalid date", CalendarDate{Year: 2024, Month: time.February, Day: 30}, Dates{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsHoliday(tt.date, tt.extra))
		})
	}
}

func TestCalendar_IsBusinessDay(t *testing.T) {
	cal := newTestCalendar()

	t.Run("weekends are never business days", func(t *testing.T) {
		d := NewDate(2024, time.January, 1)
		for i := 0; i < 400; i++ {
			if d.IsWeekend() {
				assert.False(t, cal.IsBusinessDay(d, Dates{}), d.String())
			}
			d = d.AddDays(1)
		}
	})

	t.Run("holidays are never business days", func(t *testing.T) {
		for _, h := range cal.HolidaysForYear(2024) {
			assert.False(t, cal.IsBusinessDay(h.Date, Dates{}), h.Name)
		}
	})

	t.Run("other weekdays are business days", func(t *testing.T) {
		assert.True(t, cal.IsBusinessDay(NewDate(2024, time.January, 15), Dates{}))
		assert.True(t, cal.IsBusinessDay(NewDate(2024, time.February, 29), Dates{}))
	})

	t.Run("extra dates are not business days", func(t *testing.T) {
		extra := NewDates(NewDate(2024, time.January, 25))
		assert.False(t, cal.IsBusinessDay(NewDate(2024, time.January, 25), extra))
	})
}

func TestCalendar_ISOPredicates(t *testing.T) {
	cal := newTestCalendar()

	assert.True(t, cal.IsHolidayISO("2024-01-01", Dates{}))
	assert.True(t, cal.IsHolidayISO("2024-12-25T10:00:00-03:00", Dates{}))
	assert.False(t, cal.IsHolidayISO("2024-01-15", Dates{}))
	assert.True(t, cal.IsBusinessDayISO("2024-01-15", Dates{}))

	for _, invalid := range []string{"", "not-a-date", "2024-13-01", "2024-02-30", "15/01/2024"} {
		assert.False(t, cal.IsHolidayISO(invalid, Dates{}), invalid)
		assert.False(t, cal.IsBusinessDayISO(invalid, Dates{}), invalid)
		_, ok := cal.HolidayNameISO(invalid, Dates{})
		assert.False(t, ok, invalid)
	}
}

func TestCalendar_HolidayName(t *testing.T) {
	cal := newTestCalendar()

	name, ok := cal.HolidayName(NewDate(2025, time.April, 21), Dates{})
	assert.True(t, ok)
	assert.Equal(t, "Tiradentes", name)

	name, ok = cal.HolidayName(NewDate(2025, time.April, 18), Dates{})
	assert.True(t, ok)
	assert.Equal(t, "Sexta-feira Santa", name)

	extra := ParseDates([]string{"2025-07-09=Revolução Constitucionalista"})
	name, ok = cal.HolidayName(NewDate(2025, time.July, 9), extra)
	assert.True(t, ok)
	assert.Equal(t, "Revolução Constitucionalista", name)

	_, ok = cal.HolidayName(NewDate(2025, time.July, 10), extra)
	assert.False(t, ok)

	// Good Friday 2000 fell on Tiradentes.
	require.Len(t, cal.HolidaysInPeriod(NewDate(2000, time.April, 21), NewDate(2000, time.April, 21), Dates{}), 2)
	name, ok = cal.HolidayName(NewDate(2000, time.April, 21), Dates{})
	assert.True(t, ok)
	assert.Equal(t, "Tiradentes", name)
}

func TestCalendar_HolidaysInPeriod(t *testing.T) {
	cal := newTestCalendar()

	t.Run("should list holidays across years", func(t *testing.T) {
		got := cal.HolidaysInPeriod(NewDate(2024, time.December, 20), NewDate(2025, time.January, 5), Dates{})
		require.Len(t, got, 2)
		assert.Equal(t, "Natal", got[0].Name)
		assert.Equal(t, "Confraternização Universal", got[1].Name)
	})

	t.Run("should include both boundaries", func(t *testing.T) {
		got := cal.HolidaysInPeriod(NewDate(2024, time.December, 25), NewDate(2024, time.December, 25), Dates{})
		require.Len(t, got, 1)
	})

	t.Run("should return empty list when no holiday falls in the period", func(t *testing.T) {
		got := cal.HolidaysInPeriod(NewDate(2024, time.January, 2), NewDate(2024, time.January, 31), Dates{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("should return empty list for an inverted period", func(t *testing.T) {
		got := cal.HolidaysInPeriod(NewDate(2024, time.December, 31), NewDate(2024, time.January, 1), Dates{})
		assert.Empty(t, got)
	})

	t.Run("should merge extra dates", func(t *testing.T) {
		extra := NewDates(NewDate(2024, time.January, 25), NewDate(2024, time.January, 1))
		got := cal.HolidaysInPeriod(NewDate(2024, time.January, 1), NewDate(2024, time.January, 31), extra)
		require.Len(t, got, 2)
		assert.Equal(t, Fixed, got[0].Category)
		assert.Equal(t, Extra, got[1].Category)
	})
}

func TestCalendar_Describe(t *testing.T) {
	cal := newTestCalendar()

	info := cal.Describe(NewDate(2022, time.December, 25), Dates{})
	assert.True(t, info.IsWeekend)
	assert.False(t, info.IsHoliday)
	assert.False(t, info.IsBusinessDay)
	assert.Equal(t, "Natal", info.CoincidingHoliday)

	info = cal.Describe(NewDate(2024, time.December, 25), Dates{})
	assert.False(t, info.IsWeekend)
	assert.True(t, info.IsHoliday)
	assert.Equal(t, "Natal", info.HolidayName)
}

func TestYearCache(t *testing.T) {
	t.Run("should not expose internal state", func(t *testing.T) {
		cache := NewYearCache()
		first := cache.Get(2024)
		first[0].Name = "changed"
		assert.Equal(t, "Confraternização Universal", cache.Get(2024)[0].Name)
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		cache := NewYearCache()
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(year int) {
				defer wg.Done()
				assert.Len(t, cache.Get(year), 12)
			}(2020 + i%4)
		}
		wg.Wait()
		assert.Equal(t, 4, cache.Len())
	})
}
