package event_bus

import "github.com/klokku/prazos/pkg/holiday"

const (
	ExtraHolidayChangedType    EventType = "extra_holiday.changed"
	MilestonesInconsistentType EventType = "deadline.milestones_inconsistent"
)

// ExtraHolidayChanged is published after an extra holiday of Region is stored or deleted.
type ExtraHolidayChanged struct {
	Region string
	Date   holiday.CalendarDate
}

type MilestonesInconsistent struct {
	Label  string
	Detail string
}
