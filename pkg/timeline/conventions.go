package timeline

import (
	"fmt"
	"time"

	"github.com/klokku/prazos/pkg/deadline"
)

type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay reads "HH:MM" (24h clock).
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeConventions fixes the time of day each milestone kind is placed at. Kinds without an
// entry keep whatever time of day they already have.
type TimeConventions struct {
	Location   *time.Location
	TimesOfDay map[deadline.MilestoneKind]TimeOfDay
}

func DefaultTimeConventions(loc *time.Location) TimeConventions {
	return TimeConventions{
		Location: loc,
		TimesOfDay: map[deadline.MilestoneKind]TimeOfDay{
			deadline.Start:       {Hour: 9},
			deadline.ReviewStart: {Hour: 9},
			deadline.ReviewDue:   {Hour: 18},
			deadline.Due:         {Hour: 18},
			deadline.Closed:      {Hour: 17},
		},
	}
}

func (c TimeConventions) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// at places kind on the given calendar day. original supplies the time of day when the
// conventions have none for kind.
func (c TimeConventions) at(kind deadline.MilestoneKind, year int, month time.Month, day int, original time.Time) time.Time {
	loc := c.location()
	if tod, ok := c.TimesOfDay[kind]; ok {
		return time.Date(year, month, day, tod.Hour, tod.Minute, 0, 0, loc)
	}
	original = original.In(loc)
	return time.Date(year, month, day, original.Hour(), original.Minute(), original.Second(), original.Nanosecond(), loc)
}
