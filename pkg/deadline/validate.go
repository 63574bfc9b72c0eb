package deadline

import (
	"strings"
	"time"
)

// ValidateOrder compares every present milestone of the sequence with the next present one and
// reports each pair that is out of order. Closed is only checked against start. Times are
// rendered in loc.
func ValidateOrder(ms MilestoneSet, loc *time.Location) []Violation {
	if loc == nil {
		loc = time.UTC
	}
	var violations []Violation
	var previousKind MilestoneKind
	var previous *time.Time
	for _, kind := range sequence {
		current := ms.Get(kind)
		if current == nil {
			continue
		}
		if previous != nil && previous.After(*current) {
			violations = append(violations, Violation{
				Earlier:   previousKind,
				EarlierAt: previous.In(loc),
				Later:     kind,
				LaterAt:   current.In(loc),
			})
		}
		previousKind, previous = kind, current
	}
	if ms.Start != nil && ms.Closed != nil && ms.Start.After(*ms.Closed) {
		violations = append(violations, Violation{
			Earlier:   Start,
			EarlierAt: ms.Start.In(loc),
			Later:     Closed,
			LaterAt:   ms.Closed.In(loc),
		})
	}
	return violations
}

func describeViolations(violations []Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}
