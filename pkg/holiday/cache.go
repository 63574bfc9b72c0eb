package holiday

import "sync"

// YearCache memoizes HolidaysForYear per year. It is safe for concurrent use and only ever
// hands out copies, so callers cannot mutate what it holds.
type YearCache struct {
	mu    sync.RWMutex
	years map[int][]Holiday
}

func NewYearCache() *YearCache {
	return &YearCache{years: make(map[int][]Holiday)}
}

// Get returns the holidays of year, computing and storing them on first use.
func (c *YearCache) Get(year int) []Holiday {
	c.mu.RLock()
	cached, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return copyHolidays(cached)
	}

	computed := HolidaysForYear(year)
	c.mu.Lock()
	if existing, ok := c.years[year]; ok {
		computed = existing
	} else {
		c.years[year] = computed
	}
	c.mu.Unlock()
	return copyHolidays(computed)
}

func (c *YearCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.years)
}

func copyHolidays(holidays []Holiday) []Holiday {
	out := make([]Holiday, len(holidays))
	copy(out, holidays)
	return out
}
