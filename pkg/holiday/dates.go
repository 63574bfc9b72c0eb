package holiday

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Dates is an immutable set of extra holiday dates, optionally named. The zero value is an
// empty set.
type Dates struct {
	names map[CalendarDate]string
}

func NewDates(dates ...CalendarDate) Dates {
	names := make(map[CalendarDate]string, len(dates))
	for _, d := range dates {
		if d.IsValid() {
			names[d] = ""
		}
	}
	return Dates{names: names}
}

// NewNamedDates copies named into a new set.
func NewNamedDates(named map[CalendarDate]string) Dates {
	names := make(map[CalendarDate]string, len(named))
	for d, name := range named {
		if d.IsValid() {
			names[d] = name
		}
	}
	return Dates{names: names}
}

// ParseDates builds a set from ISO strings. An entry may carry a name after "=",
// e.g. "2025-01-25=Aniversário de São Paulo". Unparseable entries are skipped.
func ParseDates(values []string) Dates {
	names := make(map[CalendarDate]string, len(values))
	for _, value := range values {
		raw, name, _ := strings.Cut(value, "=")
		d, ok := ParseDate(raw)
		if !ok {
			log.Warnf("ignoring invalid extra holiday date: %q", value)
			continue
		}
		names[d] = strings.TrimSpace(name)
	}
	return Dates{names: names}
}

func (s Dates) Contains(d CalendarDate) bool {
	_, ok := s.names[d]
	return ok
}

// Name returns the name stored for d; a date without a name reports "Feriado".
func (s Dates) Name(d CalendarDate) (string, bool) {
	name, ok := s.names[d]
	if !ok {
		return "", false
	}
	if name == "" {
		name = "Feriado"
	}
	return name, true
}

func (s Dates) Len() int {
	return len(s.names)
}

// Union returns a new set holding the dates of both sets. Names from other win on conflict
// only when the receiver has none.
func (s Dates) Union(other Dates) Dates {
	names := make(map[CalendarDate]string, len(s.names)+len(other.names))
	for d, name := range s.names {
		names[d] = name
	}
	for d, name := range other.names {
		if existing, ok := names[d]; !ok || existing == "" {
			names[d] = name
		}
	}
	return Dates{names: names}
}

// InRange lists the extra dates within [from, to] as holidays, ordered by date.
func (s Dates) InRange(from, to CalendarDate) []Holiday {
	var holidays []Holiday
	for d := range s.names {
		if d.Before(from) || d.After(to) {
			continue
		}
		name, _ := s.Name(d)
		holidays = append(holidays, Holiday{Date: d, Name: name, Category: Extra})
	}
	sortHolidays(holidays)
	return holidays
}
