package deadline

import (
	"strings"
	"time"

	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

type MilestoneKind int

const (
	Start MilestoneKind = iota
	ReviewStart
	ReviewDue
	Due
	Closed
)

// sequence is the order start, reviewStart, reviewDue and due must follow. Closed is only
// required not to precede start.
var sequence = []MilestoneKind{Start, ReviewStart, ReviewDue, Due}

func (k MilestoneKind) String() string {
	switch k {
	case Start:
		return "start"
	case ReviewStart:
		return "reviewStart"
	case ReviewDue:
		return "reviewDue"
	case Due:
		return "due"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Sequence returns the ordered milestone kinds that must be chronological.
func Sequence() []MilestoneKind {
	return append([]MilestoneKind(nil), sequence...)
}

// MilestoneSet holds the lifecycle timestamps of one item. Nil means absent.
type MilestoneSet struct {
	Start       *time.Time
	ReviewStart *time.Time
	ReviewDue   *time.Time
	Due         *time.Time
	Closed      *time.Time
}

func (ms MilestoneSet) Get(kind MilestoneKind) *time.Time {
	switch kind {
	case Start:
		return ms.Start
	case ReviewStart:
		return ms.ReviewStart
	case ReviewDue:
		return ms.ReviewDue
	case Due:
		return ms.Due
	case Closed:
		return ms.Closed
	default:
		return nil
	}
}

func (ms *MilestoneSet) Set(kind MilestoneKind, t *time.Time) {
	switch kind {
	case Start:
		ms.Start = t
	case ReviewStart:
		ms.ReviewStart = t
	case ReviewDue:
		ms.ReviewDue = t
	case Due:
		ms.Due = t
	case Closed:
		ms.Closed = t
	}
}

func (ms MilestoneSet) IsEmpty() bool {
	return ms.Start == nil && ms.ReviewStart == nil && ms.ReviewDue == nil && ms.Due == nil && ms.Closed == nil
}

// Clone returns a set that shares no pointers with ms.
func (ms MilestoneSet) Clone() MilestoneSet {
	var out MilestoneSet
	for _, kind := range []MilestoneKind{Start, ReviewStart, ReviewDue, Due, Closed} {
		if t := ms.Get(kind); t != nil {
			copied := *t
			out.Set(kind, &copied)
		}
	}
	return out
}

// RawMilestones is the wire form of a MilestoneSet: ISO strings, empty when absent.
type RawMilestones struct {
	Start       string `json:"start,omitempty"`
	ReviewStart string `json:"reviewStart,omitempty"`
	ReviewDue   string `json:"reviewDue,omitempty"`
	Due         string `json:"due,omitempty"`
	Closed      string `json:"closed,omitempty"`
}

// ParseMilestones converts raw into a MilestoneSet. Malformed values become absent milestones.
// Date-only values are read as midnight in loc.
func ParseMilestones(raw RawMilestones, loc *time.Location) MilestoneSet {
	return MilestoneSet{
		Start:       parseMilestone(Start, raw.Start, loc),
		ReviewStart: parseMilestone(ReviewStart, raw.ReviewStart, loc),
		ReviewDue:   parseMilestone(ReviewDue, raw.ReviewDue, loc),
		Due:         parseMilestone(Due, raw.Due, loc),
		Closed:      parseMilestone(Closed, raw.Closed, loc),
	}
}

// ParseTimestamp reads an RFC 3339 timestamp or a YYYY-MM-DD date (midnight in loc).
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	date, ok := holiday.ParseDate(value)
	if !ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc), true
}

func parseMilestone(kind MilestoneKind, value string, loc *time.Location) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, ok := ParseTimestamp(value, loc)
	if !ok {
		log.Debugf("ignoring malformed %s milestone: %q", kind, value)
		return nil
	}
	return &t
}

// Raw formats ms back to its wire form.
func (ms MilestoneSet) Raw() RawMilestones {
	return RawMilestones{
		Start:       formatMilestone(ms.Start),
		ReviewStart: formatMilestone(ms.ReviewStart),
		ReviewDue:   formatMilestone(ms.ReviewDue),
		Due:         formatMilestone(ms.Due),
		Closed:      formatMilestone(ms.Closed),
	}
}

func formatMilestone(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
