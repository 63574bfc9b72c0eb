package timeline

import (
	"time"

	"github.com/klokku/prazos/pkg/deadline"
)

// ValidateAndFix walks start, reviewStart, reviewDue and due. Each present milestone that is
// not after the previous present one is moved to the next calendar day, at its kind's time of
// day. Moves cascade down the sequence. Closed is moved only when it is not after start.
// Milestones are never moved backwards and ms is left untouched.
func ValidateAndFix(ms deadline.MilestoneSet, conventions TimeConventions) deadline.MilestoneSet {
	out := ms.Clone()
	var previous *time.Time
	for _, kind := range deadline.Sequence() {
		current := out.Get(kind)
		if current == nil {
			continue
		}
		if previous != nil && !current.After(*previous) {
			fixed := conventions.dayAfter(kind, *previous, *current)
			out.Set(kind, &fixed)
			current = &fixed
		}
		previous = current
	}
	if out.Start != nil && out.Closed != nil && !out.Closed.After(*out.Start) {
		fixed := conventions.dayAfter(deadline.Closed, *out.Start, *out.Closed)
		out.Closed = &fixed
	}
	return out
}

func (c TimeConventions) dayAfter(kind deadline.MilestoneKind, previous time.Time, original time.Time) time.Time {
	y, m, d := previous.In(c.location()).Date()
	return c.at(kind, y, m, d+1, original)
}
