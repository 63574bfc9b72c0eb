package extra_holiday

import (
	"context"
	"sort"

	"github.com/klokku/prazos/pkg/holiday"
)

type RepositoryStub struct {
	nextId   int
	holidays map[int]ExtraHoliday
	// Err, when set, is returned by every method.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{holidays: map[int]ExtraHoliday{}}
}

func (s *RepositoryStub) Store(ctx context.Context, h ExtraHoliday) (ExtraHoliday, error) {
	if s.Err != nil {
		return ExtraHoliday{}, s.Err
	}
	for id, existing := range s.holidays {
		if existing.Date == h.Date && existing.Region == h.Region {
			h.Id = id
			s.holidays[id] = h
			return h, nil
		}
	}
	s.nextId++
	h.Id = s.nextId
	s.holidays[h.Id] = h
	return h, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context, region string) ([]ExtraHoliday, error) {
	return s.filter(region, func(h ExtraHoliday) bool { return true })
}

func (s *RepositoryStub) GetInRange(ctx context.Context, region string, from, to holiday.CalendarDate) ([]ExtraHoliday, error) {
	return s.filter(region, func(h ExtraHoliday) bool {
		return !h.Date.Before(from) && !h.Date.After(to)
	})
}

func (s *RepositoryStub) filter(region string, keep func(ExtraHoliday) bool) ([]ExtraHoliday, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	holidays := make([]ExtraHoliday, 0)
	for _, h := range s.holidays {
		if h.Region == region && keep(h) {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (ExtraHoliday, error) {
	if s.Err != nil {
		return ExtraHoliday{}, s.Err
	}
	h, ok := s.holidays[id]
	if !ok {
		return ExtraHoliday{}, ErrExtraHolidayNotFound
	}
	delete(s.holidays, id)
	return h, nil
}
