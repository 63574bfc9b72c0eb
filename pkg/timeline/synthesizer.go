package timeline

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/holiday"
)

// maxLateDays bounds how many business days after due a late closure is placed.
const maxLateDays = 5

type GenerateConfig struct {
	Reference time.Time
	// LookbackDays is the calendar-day window before Reference the start is drawn from.
	LookbackDays int
	// MinSLA and MaxSLA bound the business days between start and due.
	MinSLA            int
	MaxSLA            int
	ReviewProbability float64
	Completed         bool
	// LateProbability is the chance a completed item is closed after its due date.
	LateProbability float64
	Conventions     TimeConventions
}

func DefaultGenerateConfig(reference time.Time, loc *time.Location) GenerateConfig {
	return GenerateConfig{
		Reference:         reference,
		LookbackDays:      30,
		MinSLA:            3,
		MaxSLA:            15,
		ReviewProbability: 0.5,
		LateProbability:   0.3,
		Conventions:       DefaultTimeConventions(loc),
	}
}

type Sample struct {
	ID         uuid.UUID
	Milestones deadline.MilestoneSet
	Status     deadline.Status
}

// Synthesizer draws plausible milestone sets from a seedable random source. Two synthesizers
// built from sources with the same seed produce the same samples.
type Synthesizer struct {
	mu         sync.Mutex
	rng        *rand.Rand
	arithmetic *business_day.Arithmetic
}

func NewSynthesizer(rng *rand.Rand, arithmetic *business_day.Arithmetic) *Synthesizer {
	return &Synthesizer{rng: rng, arithmetic: arithmetic}
}

func (s *Synthesizer) Generate(config GenerateConfig) Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generate(normalizeConfig(config))
}

// GenerateMany draws count samples in sequence from the same source.
func (s *Synthesizer) GenerateMany(config GenerateConfig, count int) []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	config = normalizeConfig(config)
	samples := make([]Sample, 0, max(count, 0))
	for i := 0; i < count; i++ {
		samples = append(samples, s.generate(config))
	}
	return samples
}

func (s *Synthesizer) generate(config GenerateConfig) Sample {
	conventions := config.Conventions
	none := holiday.Dates{}
	reference := s.arithmetic.DateOf(config.Reference)

	startDate := reference.AddDays(-s.rng.Intn(config.LookbackDays + 1))
	if !s.arithmetic.Calendar().IsBusinessDay(startDate, none) {
		startDate = s.arithmetic.NextBusinessDay(startDate, none)
	}
	sla := config.MinSLA + s.rng.Intn(config.MaxSLA-config.MinSLA+1)
	dueDate := s.arithmetic.AddBusinessDays(startDate, sla, none)

	var ms deadline.MilestoneSet
	ms.Start = s.place(conventions, deadline.Start, startDate)
	ms.Due = s.place(conventions, deadline.Due, dueDate)

	// The review window needs two distinct business days strictly between start and due.
	if sla >= 3 && s.rng.Float64() < config.ReviewProbability {
		reviewStartOffset := 1 + s.rng.Intn(sla-2)
		reviewDueOffset := reviewStartOffset + 1 + s.rng.Intn(sla-1-reviewStartOffset)
		ms.ReviewStart = s.place(conventions, deadline.ReviewStart, s.arithmetic.AddBusinessDays(startDate, reviewStartOffset, none))
		ms.ReviewDue = s.place(conventions, deadline.ReviewDue, s.arithmetic.AddBusinessDays(startDate, reviewDueOffset, none))
	}

	if config.Completed {
		var closedDate holiday.CalendarDate
		if s.rng.Float64() < config.LateProbability {
			closedDate = s.arithmetic.AddBusinessDays(dueDate, 1+s.rng.Intn(maxLateDays), none)
		} else {
			closedDate = s.arithmetic.AddBusinessDays(startDate, 1+s.rng.Intn(sla), none)
		}
		ms.Closed = s.place(conventions, deadline.Closed, closedDate)
	}

	return Sample{
		ID:         uuid.Must(uuid.NewRandomFromReader(s.rng)),
		Milestones: ms,
		Status:     statusAt(ms, reference, s.arithmetic),
	}
}

func (s *Synthesizer) place(conventions TimeConventions, kind deadline.MilestoneKind, date holiday.CalendarDate) *time.Time {
	t := conventions.at(kind, date.Year, date.Month, date.Day, date.Time(conventions.location()))
	return &t
}

// statusAt is the status an item with ms would plausibly carry on the reference date.
func statusAt(ms deadline.MilestoneSet, reference holiday.CalendarDate, arithmetic *business_day.Arithmetic) deadline.Status {
	switch {
	case ms.Closed != nil:
		return deadline.StatusDone
	case reference.After(arithmetic.DateOf(*ms.Due)):
		return deadline.StatusLate
	case ms.ReviewStart != nil && !reference.Before(arithmetic.DateOf(*ms.ReviewStart)):
		return deadline.StatusInReview
	case !reference.Before(arithmetic.DateOf(*ms.Start)):
		return deadline.StatusInProgress
	default:
		return deadline.StatusPending
	}
}

func normalizeConfig(config GenerateConfig) GenerateConfig {
	config.LookbackDays = max(config.LookbackDays, 0)
	config.MinSLA = max(config.MinSLA, 1)
	config.MaxSLA = max(config.MaxSLA, config.MinSLA)
	return config
}
