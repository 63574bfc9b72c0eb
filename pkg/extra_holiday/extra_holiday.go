package extra_holiday

import (
	"errors"

	"github.com/klokku/prazos/pkg/holiday"
)

var ErrExtraHolidayNotFound = errors.New("extra holiday not found")
var ErrInvalidDate = errors.New("invalid holiday date")

// ExtraHoliday is a regional or organisational holiday added on top of the national calendar.
type ExtraHoliday struct {
	Id     int
	Date   holiday.CalendarDate
	Name   string
	Region string
}

func toDates(holidays []ExtraHoliday) holiday.Dates {
	named := make(map[holiday.CalendarDate]string, len(holidays))
	for _, h := range holidays {
		named[h.Date] = h.Name
	}
	return holiday.NewNamedDates(named)
}
