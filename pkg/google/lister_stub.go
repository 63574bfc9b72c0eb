package google

import (
	"context"
	"time"
)

type EventListerStub struct {
	Events []CalendarEvent
	Err    error
	Calls  int
}

func (s *EventListerStub) ListAllDay(ctx context.Context, calendarId string, from, to time.Time) ([]CalendarEvent, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Events, nil
}
