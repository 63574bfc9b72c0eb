package extra_holiday

import (
	"context"
	"fmt"
	"strings"

	"github.com/klokku/prazos/internal/event_bus"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Store(ctx context.Context, h ExtraHoliday) (ExtraHoliday, error)
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context, region string) ([]ExtraHoliday, error)
	GetInRange(ctx context.Context, region string, from, to holiday.CalendarDate) ([]ExtraHoliday, error)
	// Dates returns the stored holidays of region merged with the configured ones.
	Dates(ctx context.Context, region string) (holiday.Dates, error)
	DefaultRegion() string
}

type ServiceImpl struct {
	repo          Repository
	eventBus      *event_bus.EventBus
	defaultRegion string
	configured    holiday.Dates
}

// NewService creates a service. configured holds the dates coming from configuration; they apply
// to defaultRegion only.
func NewService(repo Repository, eventBus *event_bus.EventBus, defaultRegion string, configured holiday.Dates) *ServiceImpl {
	return &ServiceImpl{
		repo:          repo,
		eventBus:      eventBus,
		defaultRegion: normalizeRegion(defaultRegion),
		configured:    configured,
	}
}

func (s *ServiceImpl) DefaultRegion() string {
	return s.defaultRegion
}

func (s *ServiceImpl) Store(ctx context.Context, h ExtraHoliday) (ExtraHoliday, error) {
	if !h.Date.IsValid() {
		return ExtraHoliday{}, ErrInvalidDate
	}
	h.Region = s.regionOrDefault(h.Region)
	h.Name = strings.TrimSpace(h.Name)

	stored, err := s.repo.Store(ctx, h)
	if err != nil {
		return ExtraHoliday{}, err
	}
	s.publishChanged(ctx, stored)
	return stored, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.publishChanged(ctx, deleted)
	return nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, region string) ([]ExtraHoliday, error) {
	return s.repo.GetAll(ctx, s.regionOrDefault(region))
}

func (s *ServiceImpl) GetInRange(ctx context.Context, region string, from, to holiday.CalendarDate) ([]ExtraHoliday, error) {
	if to.Before(from) {
		return []ExtraHoliday{}, nil
	}
	return s.repo.GetInRange(ctx, s.regionOrDefault(region), from, to)
}

func (s *ServiceImpl) Dates(ctx context.Context, region string) (holiday.Dates, error) {
	region = s.regionOrDefault(region)
	stored, err := s.repo.GetAll(ctx, region)
	if err != nil {
		return holiday.Dates{}, fmt.Errorf("failed to load extra holidays of %s: %w", region, err)
	}
	dates := toDates(stored)
	if region == s.defaultRegion {
		dates = s.configured.Union(dates)
	}
	return dates, nil
}

func (s *ServiceImpl) publishChanged(ctx context.Context, h ExtraHoliday) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExtraHolidayChangedType, event_bus.ExtraHolidayChanged{
		Region: h.Region,
		Date:   h.Date,
	}))
	if err != nil {
		log.Warnf("extra holiday change of %s was not fully handled: %v", h.Region, err)
	}
}

func (s *ServiceImpl) regionOrDefault(region string) string {
	region = normalizeRegion(region)
	if region == "" {
		return s.defaultRegion
	}
	return region
}

func normalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// ConfiguredProvider serves only the dates from configuration. It is used when no database is set up.
func ConfiguredProvider(configured holiday.Dates) holiday.ExtraDatesProvider {
	return func(ctx context.Context) (holiday.Dates, error) {
		return configured, nil
	}
}
