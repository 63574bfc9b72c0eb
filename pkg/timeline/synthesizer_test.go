package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = time.Date(2024, 6, 14, 10, 0, 0, 0, location)

func newTestArithmetic() *business_day.Arithmetic {
	return business_day.NewArithmetic(holiday.NewCalendar(location, holiday.NewYearCache()))
}

func TestSynthesizer_IsReproducible(t *testing.T) {
	config := DefaultGenerateConfig(reference, location)
	config.Completed = true

	first := NewSynthesizer(rand.New(rand.NewSource(42)), newTestArithmetic()).GenerateMany(config, 20)
	second := NewSynthesizer(rand.New(rand.NewSource(42)), newTestArithmetic()).GenerateMany(config, 20)

	require.Len(t, first, 20)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Milestones.Raw(), second[i].Milestones.Raw())
		assert.Equal(t, first[i].Status, second[i].Status)
	}
	assert.NotEqual(t, first[0].ID, first[1].ID)
}

func TestSynthesizer_GeneratesPlausibleSets(t *testing.T) {
	arithmetic := newTestArithmetic()
	calendar := arithmetic.Calendar()
	rng := rand.New(rand.NewSource(42))
	synthesizer := NewSynthesizer(rng, arithmetic)
	none := holiday.Dates{}
	withReview, late, onTime := 0, 0, 0

	for i := 0; i < 500; i++ {
		config := DefaultGenerateConfig(reference, location)
		config.Completed = i%2 == 0
		sample := synthesizer.Generate(config)
		ms := sample.Milestones

		require.NotNil(t, ms.Start)
		require.NotNil(t, ms.Due)
		assert.Empty(t, deadline.ValidateOrder(ms, location))

		startDate := arithmetic.DateOf(*ms.Start)
		dueDate := arithmetic.DateOf(*ms.Due)
		assert.True(t, calendar.IsBusinessDay(startDate, none), startDate.String())
		assert.False(t, startDate.Before(arithmetic.DateOf(reference).AddDays(-config.LookbackDays)))
		sla := arithmetic.BusinessDaysDiff(startDate, dueDate, none)
		assert.GreaterOrEqual(t, sla, config.MinSLA)
		assert.LessOrEqual(t, sla, config.MaxSLA)
		assert.Equal(t, 9, ms.Start.Hour())
		assert.Equal(t, 18, ms.Due.Hour())

		if ms.ReviewStart != nil {
			withReview++
			require.NotNil(t, ms.ReviewDue)
			assert.True(t, ms.ReviewStart.After(*ms.Start))
			assert.True(t, ms.ReviewDue.Before(*ms.Due))
		} else {
			assert.Nil(t, ms.ReviewDue)
		}

		if config.Completed {
			require.NotNil(t, ms.Closed)
			assert.Equal(t, deadline.StatusDone, sample.Status)
			if arithmetic.DateOf(*ms.Closed).After(dueDate) {
				late++
			} else {
				onTime++
			}
		} else {
			assert.Nil(t, ms.Closed)
			assert.NotEqual(t, deadline.StatusDone, sample.Status)
		}
	}

	assert.Greater(t, withReview, 0)
	assert.Greater(t, late, 0)
	assert.Greater(t, onTime, 0)
}

func TestSynthesizer_NormalizesConfig(t *testing.T) {
	synthesizer := NewSynthesizer(rand.New(rand.NewSource(7)), newTestArithmetic())
	sample := synthesizer.Generate(GenerateConfig{
		Reference:    reference,
		LookbackDays: -5,
		MinSLA:       0,
		MaxSLA:       -1,
		Conventions:  DefaultTimeConventions(location),
	})

	arithmetic := newTestArithmetic()
	sla := arithmetic.BusinessDaysDiff(arithmetic.DateOf(*sample.Milestones.Start), arithmetic.DateOf(*sample.Milestones.Due), holiday.Dates{})
	assert.Equal(t, 1, sla)
	assert.Nil(t, sample.Milestones.ReviewStart)
}
