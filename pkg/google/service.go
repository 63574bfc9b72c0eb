package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/prazos/pkg/extra_holiday"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

// DefaultHolidayCalendarId is Google's public calendar of Brazilian holidays.
const DefaultHolidayCalendarId = "pt.brazilian#holiday@group.v.calendar.google.com"

type ImportResult struct {
	Imported []extra_holiday.ExtraHoliday
	// Skipped counts events that were national holidays, observances or repeated dates.
	Skipped int
}

type HolidayImporter interface {
	Import(ctx context.Context, year int, region string) (ImportResult, error)
}

type HolidayImporterImpl struct {
	lister     EventLister
	calendarId string
	calendar   *holiday.Calendar
	extras     extra_holiday.Service
}

// NewHolidayImporter creates an importer. A nil lister makes every import fail with
// ErrUnauthenticated.
func NewHolidayImporter(lister EventLister, calendarId string, calendar *holiday.Calendar, extras extra_holiday.Service) *HolidayImporterImpl {
	if calendarId == "" {
		calendarId = DefaultHolidayCalendarId
	}
	return &HolidayImporterImpl{
		lister:     lister,
		calendarId: calendarId,
		calendar:   calendar,
		extras:     extras,
	}
}

func (i *HolidayImporterImpl) Import(ctx context.Context, year int, region string) (ImportResult, error) {
	if i.lister == nil {
		return ImportResult{}, ErrUnauthenticated
	}
	loc := i.calendar.Location()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0)

	events, err := i.lister.ListAllDay(ctx, i.calendarId, from, to)
	if err != nil {
		return ImportResult{}, err
	}

	national := make(map[holiday.CalendarDate]bool)
	for _, h := range i.calendar.HolidaysForYear(year) {
		national[h.Date] = true
	}

	result := ImportResult{Imported: make([]extra_holiday.ExtraHoliday, 0)}
	seen := make(map[holiday.CalendarDate]bool)
	for _, event := range events {
		date, ok := holiday.ParseDate(event.Date)
		if !ok || date.Year != year || national[date] || seen[date] || isObservance(event) {
			result.Skipped++
			continue
		}
		seen[date] = true

		stored, err := i.extras.Store(ctx, extra_holiday.ExtraHoliday{
			Date:   date,
			Name:   strings.TrimSpace(event.Summary),
			Region: region,
		})
		if err != nil {
			return result, fmt.Errorf("failed to store imported holiday %s: %w", date, err)
		}
		result.Imported = append(result.Imported, stored)
	}
	log.Infof("imported %d holidays of %d from %s (%d skipped)", len(result.Imported), year, i.calendarId, result.Skipped)
	return result, nil
}

// isObservance reports commemorative dates that Google lists without a day off.
func isObservance(event CalendarEvent) bool {
	description := strings.ToLower(event.Description)
	return strings.HasPrefix(description, "observance") || strings.HasPrefix(description, "observância")
}
