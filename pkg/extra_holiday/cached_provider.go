package extra_holiday

import (
	"context"
	"sync"

	"github.com/klokku/prazos/internal/event_bus"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

// CachedProvider keeps one immutable snapshot of extra holiday dates per region. A snapshot is
// dropped whenever a holiday of its region changes and rebuilt on the next read.
type CachedProvider struct {
	mu        sync.RWMutex
	source    func(ctx context.Context, region string) (holiday.Dates, error)
	snapshots map[string]holiday.Dates
	// generation is bumped on every invalidation; loads started before it are not cached.
	generation uint64
}

func NewCachedProvider(source func(ctx context.Context, region string) (holiday.Dates, error), eventBus *event_bus.EventBus) *CachedProvider {
	c := &CachedProvider{
		source:    source,
		snapshots: make(map[string]holiday.Dates),
	}
	if eventBus != nil {
		event_bus.SubscribeTyped(eventBus, event_bus.ExtraHolidayChangedType, func(e event_bus.EventT[event_bus.ExtraHolidayChanged]) error {
			log.Debugf("extra holiday %s changed in %s, dropping cached dates", e.Data.Date, e.Data.Region)
			c.Invalidate(e.Data.Region)
			return nil
		})
	}
	return c
}

func (c *CachedProvider) Dates(ctx context.Context, region string) (holiday.Dates, error) {
	c.mu.RLock()
	dates, ok := c.snapshots[region]
	generation := c.generation
	c.mu.RUnlock()
	if ok {
		return dates, nil
	}

	dates, err := c.source(ctx, region)
	if err != nil {
		return holiday.Dates{}, err
	}
	c.mu.Lock()
	if c.generation == generation {
		c.snapshots[region] = dates
	}
	c.mu.Unlock()
	return dates, nil
}

func (c *CachedProvider) Invalidate(region string) {
	c.mu.Lock()
	delete(c.snapshots, region)
	c.generation++
	c.mu.Unlock()
}

// Provider binds the cache to one region.
func (c *CachedProvider) Provider(region string) holiday.ExtraDatesProvider {
	return func(ctx context.Context) (holiday.Dates, error) {
		return c.Dates(ctx, region)
	}
}
