package holiday

import "time"

// easterCycle is the period, in years, after which the Gregorian Easter dates repeat.
const easterCycle = 5_700_000

// EasterSunday returns the Gregorian Easter Sunday of year (Meeus/Jones/Butcher algorithm).
// Years below 1 are mapped onto the equivalent year of the Easter cycle so the result stays
// deterministic for every int.
func EasterSunday(year int) CalendarDate {
	y := year
	if y < 1 {
		y = ((y % easterCycle) + easterCycle) % easterCycle
		if y == 0 {
			y = easterCycle
		}
	}

	a := y % 19
	b := y / 100
	c := y % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return CalendarDate{Year: year, Month: time.Month(month), Day: day}
}
