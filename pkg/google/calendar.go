package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/prazos/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	gcal "google.golang.org/api/calendar/v3"
)

var ErrCalendarUnavailable = errors.New("google calendar is temporarily unavailable")

// CalendarEvent is an all-day entry of a holiday calendar.
type CalendarEvent struct {
	Id          string
	Summary     string
	Description string
	// Date is the "YYYY-MM-DD" start date of the event.
	Date string
}

type EventLister interface {
	// ListAllDay returns the all-day events starting within [from, to).
	ListAllDay(ctx context.Context, calendarId string, from, to time.Time) ([]CalendarEvent, error)
}

type CalendarLister struct {
	service *gcal.Service
}

func NewCalendarLister(service *gcal.Service) *CalendarLister {
	return &CalendarLister{service: service}
}

func (l *CalendarLister) ListAllDay(ctx context.Context, calendarId string, from, to time.Time) ([]CalendarEvent, error) {
	events := make([]CalendarEvent, 0)
	err := l.service.Events.List(calendarId).
		Context(ctx).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *gcal.Events) error {
			for _, item := range page.Items {
				if item.Start == nil || item.Start.Date == "" {
					log.Tracef("ignoring timed event %q", item.Summary)
					continue
				}
				events = append(events, CalendarEvent{
					Id:          item.Id,
					Summary:     item.Summary,
					Description: item.Description,
					Date:        item.Start.Date,
				})
			}
			return nil
		})
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

// BreakerLister stops calling the wrapped lister after repeated failures until the breaker
// timeout elapses.
type BreakerLister struct {
	next    EventLister
	breaker *gobreaker.CircuitBreaker[[]CalendarEvent]
}

func NewBreakerLister(next EventLister, cfg config.Breaker) *BreakerLister {
	settings := gobreaker.Settings{
		Name:        "google-calendar",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= max(cfg.FailureThreshold, 1)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker %s changed from %s to %s", name, from, to)
		},
	}
	return &BreakerLister{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]CalendarEvent](settings),
	}
}

func (l *BreakerLister) ListAllDay(ctx context.Context, calendarId string, from, to time.Time) ([]CalendarEvent, error) {
	events, err := l.breaker.Execute(func() ([]CalendarEvent, error) {
		return l.next.ListAllDay(ctx, calendarId, from, to)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCalendarUnavailable
	}
	return events, err
}
