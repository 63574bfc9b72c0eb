package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/prazos/internal/event_bus"
	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

// Request asks for the stats of one milestone set. Empty Mode uses the service default and a
// nil Now uses the service clock.
type Request struct {
	Label      string
	Milestones RawMilestones
	Mode       CountingMode
	Status     Status
	Now        *time.Time
}

type Result struct {
	Label string
	Stats Stats
}

type Service interface {
	Compute(ctx context.Context, request Request) (Stats, error)
	ComputeBatch(ctx context.Context, requests []Request) ([]Result, error)
	Validate(raw RawMilestones) []Violation
}

type ServiceImpl struct {
	engine      *Engine
	extraDates  holiday.ExtraDatesProvider
	eventBus    *event_bus.EventBus
	defaultMode CountingMode
	clock       utils.Clock
}

func NewService(engine *Engine, extraDates holiday.ExtraDatesProvider, eventBus *event_bus.EventBus, defaultMode CountingMode, clock utils.Clock) *ServiceImpl {
	if defaultMode == "" {
		defaultMode = BusinessDays
	}
	if clock == nil {
		clock = &utils.SystemClock{}
	}
	return &ServiceImpl{
		engine:      engine,
		extraDates:  extraDates,
		eventBus:    eventBus,
		defaultMode: defaultMode,
		clock:       clock,
	}
}

func (s *ServiceImpl) Compute(ctx context.Context, request Request) (Stats, error) {
	extra, err := s.loadExtra(ctx)
	if err != nil {
		return Stats{}, err
	}
	return s.compute(ctx, request, extra), nil
}

// ComputeBatch computes every request against the same extra holidays and clock reading.
func (s *ServiceImpl) ComputeBatch(ctx context.Context, requests []Request) ([]Result, error) {
	extra, err := s.loadExtra(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	results := make([]Result, 0, len(requests))
	for _, request := range requests {
		if request.Now == nil {
			request.Now = &now
		}
		results = append(results, Result{Label: request.Label, Stats: s.compute(ctx, request, extra)})
	}
	return results, nil
}

func (s *ServiceImpl) Validate(raw RawMilestones) []Violation {
	return ValidateOrder(ParseMilestones(raw, s.engine.Location()), s.engine.Location())
}

func (s *ServiceImpl) compute(ctx context.Context, request Request, extra holiday.Dates) Stats {
	mode := request.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	now := s.clock.Now()
	if request.Now != nil {
		now = *request.Now
	}
	stats := s.engine.Compute(Input{
		Milestones: ParseMilestones(request.Milestones, s.engine.Location()),
		Mode:       mode,
		Now:        now,
		Status:     request.Status,
		Extra:      extra,
	})
	log.Tracef("stats for %q: %+v", request.Label, stats)

	if stats.IsInconsistent && s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.MilestonesInconsistentType, event_bus.MilestonesInconsistent{
			Label:  request.Label,
			Detail: stats.InconsistencyDetail,
		}))
		if err != nil {
			log.Errorf("failed to publish inconsistency of %q: %v", request.Label, err)
		}
	}
	return stats
}

func (s *ServiceImpl) loadExtra(ctx context.Context) (holiday.Dates, error) {
	if s.extraDates == nil {
		return holiday.Dates{}, nil
	}
	extra, err := s.extraDates(ctx)
	if err != nil {
		return holiday.Dates{}, fmt.Errorf("failed to load extra holidays: %w", err)
	}
	return extra, nil
}
