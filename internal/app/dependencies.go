package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/prazos/internal/config"
	"github.com/klokku/prazos/internal/event_bus"
	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/extra_holiday"
	"github.com/klokku/prazos/pkg/google"
	"github.com/klokku/prazos/pkg/holiday"
	"github.com/klokku/prazos/pkg/timeline"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Calendar           *holiday.Calendar
	Arithmetic         *business_day.Arithmetic
	ExtraDates         holiday.ExtraDatesProvider
	HolidayHandler     *holiday.Handler
	BusinessDayHandler *business_day.Handler

	// Set only when the database is enabled.
	ExtraHolidayService extra_holiday.Service
	ExtraHolidayCache   *extra_holiday.CachedProvider
	ExtraHolidayHandler *extra_holiday.Handler
	GoogleImporter      google.HolidayImporter
	GoogleHandler       *google.Handler

	DeadlineEngine    *deadline.Engine
	DeadlineService   deadline.Service
	CsvReportRenderer *deadline.CsvReportRenderer
	DeadlineHandler   *deadline.Handler

	TimelineDefaults timeline.GenerateConfig
	TimelineHandler  *timeline.Handler
}

// BuildDependencies initializes and wires all application services and handlers. A nil db
// serves extra holidays from configuration only.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBusWithClock(deps.Clock)

	location := holiday.LoadLocation(cfg.Calendar.Timezone)
	deps.Calendar = holiday.NewCalendar(location, holiday.NewYearCache())
	deps.Arithmetic = business_day.NewArithmetic(deps.Calendar)

	configured := holiday.ParseDates(cfg.Calendar.ExtraHolidays)
	if db != nil {
		service := extra_holiday.NewService(extra_holiday.NewRepository(db), deps.EventBus, cfg.Calendar.Region, configured)
		deps.ExtraHolidayService = service
		deps.ExtraHolidayCache = extra_holiday.NewCachedProvider(service.Dates, deps.EventBus)
		deps.ExtraDates = deps.ExtraHolidayCache.Provider(service.DefaultRegion())
		deps.ExtraHolidayHandler = extra_holiday.NewHandler(service)

		deps.GoogleImporter = google.NewHolidayImporter(googleLister(ctx, cfg.Google), cfg.Google.HolidayCalendarId, deps.Calendar, service)
		deps.GoogleHandler = google.NewHandler(deps.GoogleImporter)
	} else {
		deps.ExtraDates = extra_holiday.ConfiguredProvider(configured)
	}
	deps.HolidayHandler = holiday.NewHandler(deps.Calendar, deps.ExtraDates)
	deps.BusinessDayHandler = business_day.NewHandler(deps.Arithmetic, deps.ExtraDates)

	deps.DeadlineEngine = deadline.NewEngine(deps.Arithmetic)
	deps.DeadlineService = deadline.NewService(deps.DeadlineEngine, deps.ExtraDates, deps.EventBus, countingMode(cfg.Calendar.CountingMode), deps.Clock)
	deps.CsvReportRenderer = deadline.NewCsvReportRenderer()
	deps.DeadlineHandler = deadline.NewHandler(deps.DeadlineService, deps.CsvReportRenderer)

	deps.TimelineDefaults = timelineDefaults(cfg.Timeline, location)
	deps.TimelineHandler = timeline.NewHandler(deps.Arithmetic, deps.TimelineDefaults, deps.Clock)

	event_bus.SubscribeTyped(deps.EventBus, event_bus.MilestonesInconsistentType, func(e event_bus.EventT[event_bus.MilestonesInconsistent]) error {
		log.WithField("label", e.Data.Label).Warnf("inconsistent milestones: %s", e.Data.Detail)
		return nil
	})

	return deps
}

func googleLister(ctx context.Context, cfg config.Google) google.EventLister {
	service, err := google.NewCalendarService(ctx, cfg)
	if errors.Is(err, google.ErrUnauthenticated) {
		log.Info("Google Calendar credentials not configured, holiday import is disabled")
		return nil
	}
	if err != nil {
		log.Warnf("Google Calendar holiday import is disabled: %v", err)
		return nil
	}
	return google.NewBreakerLister(google.NewCalendarLister(service), cfg.Breaker)
}

func countingMode(value string) deadline.CountingMode {
	mode, err := deadline.ParseCountingMode(value)
	if err != nil {
		log.Warnf("%v, counting business days", err)
		return deadline.BusinessDays
	}
	return mode
}

func timelineDefaults(cfg config.Timeline, location *time.Location) timeline.GenerateConfig {
	defaults := timeline.DefaultGenerateConfig(time.Time{}, location)
	defaults.LookbackDays = cfg.LookbackDays
	defaults.MinSLA = cfg.MinSla
	defaults.MaxSLA = cfg.MaxSla
	defaults.ReviewProbability = cfg.ReviewProbability
	defaults.LateProbability = cfg.LateProbability

	times := map[deadline.MilestoneKind]string{
		deadline.Start:       cfg.StartTime,
		deadline.ReviewStart: cfg.ReviewStartTime,
		deadline.ReviewDue:   cfg.ReviewDueTime,
		deadline.Due:         cfg.DueTime,
		deadline.Closed:      cfg.ClosedTime,
	}
	for kind, value := range times {
		if value == "" {
			continue
		}
		timeOfDay, err := timeline.ParseTimeOfDay(value)
		if err != nil {
			log.Warnf("ignoring %s time %q: %v", kind, value, err)
			continue
		}
		defaults.Conventions.TimesOfDay[kind] = timeOfDay
	}
	return defaults
}
