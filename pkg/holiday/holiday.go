package holiday

import (
	"sort"
	"time"
)

type Category string

const (
	Fixed   Category = "fixed"
	Movable Category = "movable"
	// Extra marks a caller-supplied (regional or organisational) holiday.
	Extra Category = "extra"
)

type Holiday struct {
	Date     CalendarDate
	Name     string
	Category Category
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

type movableHoliday struct {
	// offset is counted in calendar days from Easter Sunday.
	offset int
	name   string
}

var fixedHolidays = []fixedHoliday{
	{time.January, 1, "Confraternização Universal"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Dia do Trabalho"},
	{time.September, 7, "Independência do Brasil"},
	{time.October, 12, "Nossa Senhora Aparecida"},
	{time.November, 2, "Finados"},
	{time.November, 15, "Proclamação da República"},
	{time.December, 25, "Natal"},
}

var movableHolidays = []movableHoliday{
	{-47, "Carnaval"},
	{-2, "Sexta-feira Santa"},
	{0, "Páscoa"},
	{60, "Corpus Christi"},
}

// HolidaysForYear computes the national holidays of year ordered by date: eight fixed ones and
// four derived from Easter. The list always has twelve entries, so dates are not unique: when a
// movable holiday lands on a fixed one (Easter on April 21, as in 2019) both entries are kept,
// fixed first. HolidayName reports the fixed one for such a date.
func HolidaysForYear(year int) []Holiday {
	holidays := make([]Holiday, 0, len(fixedHolidays)+len(movableHolidays))
	for _, f := range fixedHolidays {
		holidays = append(holidays, Holiday{
			Date:     CalendarDate{Year: year, Month: f.month, Day: f.day},
			Name:     f.name,
			Category: Fixed,
		})
	}
	easter := EasterSunday(year)
	for _, m := range movableHolidays {
		holidays = append(holidays, Holiday{
			Date:     easter.AddDays(m.offset),
			Name:     m.name,
			Category: Movable,
		})
	}
	sortHolidays(holidays)
	return holidays
}

func sortHolidays(holidays []Holiday) {
	sort.SliceStable(holidays, func(i, j int) bool {
		if holidays[i].Date != holidays[j].Date {
			return holidays[i].Date.Before(holidays[j].Date)
		}
		return categoryRank(holidays[i].Category) < categoryRank(holidays[j].Category)
	})
}

func categoryRank(c Category) int {
	switch c {
	case Fixed:
		return 0
	case Movable:
		return 1
	default:
		return 2
	}
}
