package deadline

import (
	"math"
	"time"

	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/holiday"
)

type Input struct {
	Milestones MilestoneSet
	Mode       CountingMode
	Now        time.Time
	// Status is the externally tracked status; the engine only promotes it to late or done.
	Status Status
	Extra  holiday.Dates
}

// Engine computes deadline statistics. It holds no state besides the arithmetic and is safe
// for concurrent use.
type Engine struct {
	arithmetic *business_day.Arithmetic
}

func NewEngine(arithmetic *business_day.Arithmetic) *Engine {
	return &Engine{arithmetic: arithmetic}
}

func (e *Engine) Compute(in Input) Stats {
	ms := in.Milestones
	stats := Stats{DerivedStatus: in.Status}
	if stats.DerivedStatus == "" {
		stats.DerivedStatus = StatusPending
	}

	stats.Violations = ValidateOrder(ms, e.arithmetic.Calendar().Location())
	if len(stats.Violations) > 0 {
		stats.IsInconsistent = true
		stats.InconsistencyDetail = describeViolations(stats.Violations)
	}

	if ms.Start != nil && ms.Due != nil {
		stats.Total = e.distance(*ms.Start, *ms.Due, in.Mode, in.Extra)
	}

	if ms.Start != nil {
		end := in.Now
		if ms.Closed != nil {
			end = *ms.Closed
		}
		stats.Elapsed = e.distance(*ms.Start, end, in.Mode, in.Extra)
		if stats.Total > 0 {
			stats.Elapsed = clamp(stats.Elapsed, 0, stats.Total)
		}
	}

	if ms.Closed == nil && ms.Start != nil && ms.Due != nil {
		if e.arithmetic.DateOf(in.Now).After(e.arithmetic.DateOf(*ms.Due)) {
			// Overdue never exceeds the SLA window itself. This is a display policy, not a
			// property of the arithmetic; revisit together with the report consumers.
			stats.Overdue = min(e.distance(*ms.Due, in.Now, in.Mode, in.Extra), stats.Total)
		} else {
			stats.Remaining = clamp(e.distance(in.Now, *ms.Due, in.Mode, in.Extra), 0, stats.Total-stats.Elapsed)
		}
	}

	switch {
	case ms.Closed != nil:
		stats.ProgressPercent = 100
	case stats.Total > 0:
		ratio := float64(stats.Elapsed) / float64(stats.Total)
		stats.ProgressPercent = min(int(math.Round(100*ratio)), 100)
	}

	switch {
	case ms.Closed != nil || in.Status == StatusDone:
		stats.DerivedStatus = StatusDone
	case stats.Overdue > 0 || in.Status == StatusLate:
		stats.DerivedStatus = StatusLate
	}
	return stats
}

// distance is the number of days from from to to in mode, or 0 when to is not after from.
func (e *Engine) distance(from, to time.Time, mode CountingMode, extra holiday.Dates) int {
	fromDate := e.arithmetic.DateOf(from)
	toDate := e.arithmetic.DateOf(to)
	if mode == CalendarDays {
		return max(fromDate.DaysUntil(toDate), 0)
	}
	return e.arithmetic.BusinessDaysDiff(fromDate, toDate, extra)
}

func clamp(value, low, high int) int {
	if high < low {
		return low
	}
	return min(max(value, low), high)
}

func (e *Engine) Location() *time.Location {
	return e.arithmetic.Calendar().Location()
}
