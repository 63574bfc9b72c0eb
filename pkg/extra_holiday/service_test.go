package extra_holiday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/prazos/internal/event_bus"
	"github.com/klokku/prazos/pkg/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configured = holiday.ParseDates([]string{"2025-01-25=Aniversário de São Paulo"})

func setupServiceTest() (*ServiceImpl, *RepositoryStub, *event_bus.EventBus) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	return NewService(repo, bus, "sp", configured), repo, bus
}

func TestServiceImpl_Store(t *testing.T) {
	t.Run("should default the region and publish a change", func(t *testing.T) {
		// given
		service, _, bus := setupServiceTest()
		var changes []event_bus.ExtraHolidayChanged
		event_bus.SubscribeTyped(bus, event_bus.ExtraHolidayChangedType, func(e event_bus.EventT[event_bus.ExtraHolidayChanged]) error {
			changes = append(changes, e.Data)
			return nil
		})

		// when
		stored, err := service.Store(context.Background(), ExtraHoliday{Date: holiday.NewDate(2025, time.July, 9), Name: " Revolução "})

		// then
		require.NoError(t, err)
		assert.Equal(t, "SP", stored.Region)
		assert.Equal(t, "Revolução", stored.Name)
		require.Len(t, changes, 1)
		assert.Equal(t, event_bus.ExtraHolidayChanged{Region: "SP", Date: holiday.NewDate(2025, time.July, 9)}, changes[0])
	})

	t.Run("should reject an invalid date", func(t *testing.T) {
		service, _, _ := setupServiceTest()

		_, err := service.Store(context.Background(), ExtraHoliday{Date: holiday.CalendarDate{Year: 2025, Month: time.February, Day: 30}})

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("should not publish when the repository fails", func(t *testing.T) {
		service, repo, bus := setupServiceTest()
		repo.Err = errors.New("db down")
		published := false
		bus.Subscribe(event_bus.ExtraHolidayChangedType, func(e event_bus.Event) error {
			published = true
			return nil
		})

		_, err := service.Store(context.Background(), ExtraHoliday{Date: holiday.NewDate(2025, time.July, 9)})

		assert.Error(t, err)
		assert.False(t, published)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	service, _, bus := setupServiceTest()
	ctx := context.Background()
	stored, err := service.Store(ctx, ExtraHoliday{Date: holiday.NewDate(2025, time.July, 9), Region: "rj"})
	require.NoError(t, err)
	var regions []string
	event_bus.SubscribeTyped(bus, event_bus.ExtraHolidayChangedType, func(e event_bus.EventT[event_bus.ExtraHolidayChanged]) error {
		regions = append(regions, e.Data.Region)
		return nil
	})

	require.NoError(t, service.Delete(ctx, stored.Id))
	assert.ErrorIs(t, service.Delete(ctx, stored.Id), ErrExtraHolidayNotFound)
	assert.Equal(t, []string{"RJ"}, regions)
}

func TestServiceImpl_Dates(t *testing.T) {
	service, _, _ := setupServiceTest()
	ctx := context.Background()
	_, err := service.Store(ctx, ExtraHoliday{Date: holiday.NewDate(2025, time.July, 9), Name: "Revolução Constitucionalista"})
	require.NoError(t, err)
	_, err = service.Store(ctx, ExtraHoliday{Date: holiday.NewDate(2025, time.March, 1), Region: "RJ"})
	require.NoError(t, err)

	t.Run("should merge configured dates into the default region", func(t *testing.T) {
		dates, err := service.Dates(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 2, dates.Len())
		assert.True(t, dates.Contains(holiday.NewDate(2025, time.January, 25)))
		assert.True(t, dates.Contains(holiday.NewDate(2025, time.July, 9)))
	})

	t.Run("should keep other regions apart", func(t *testing.T) {
		dates, err := service.Dates(ctx, "rj")
		require.NoError(t, err)
		assert.Equal(t, 1, dates.Len())
		name, ok := dates.Name(holiday.NewDate(2025, time.March, 1))
		assert.True(t, ok)
		assert.Equal(t, "Feriado", name)
	})
}

func TestServiceImpl_GetInRange_InvertedPeriod(t *testing.T) {
	service, _, _ := setupServiceTest()

	holidays, err := service.GetInRange(context.Background(), "", holiday.NewDate(2025, time.December, 31), holiday.NewDate(2025, time.January, 1))

	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestConfiguredProvider(t *testing.T) {
	dates, err := ConfiguredProvider(configured)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, configured, dates)
}
