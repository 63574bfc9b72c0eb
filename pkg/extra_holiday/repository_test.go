package extra_holiday

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/prazos/internal/test_utils"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository
}

func TestRepositoryImpl_Store(t *testing.T) {
	t.Run("should store a new holiday", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		h := ExtraHoliday{Date: holiday.NewDate(2025, time.January, 25), Name: "Aniversário de São Paulo", Region: "SP"}

		// when
		stored, err := repo.Store(ctx, h)

		// then
		require.NoError(t, err)
		assert.NotZero(t, stored.Id)
		all, err := repo.GetAll(ctx, "SP")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, stored, all[0])
	})

	t.Run("should rename a holiday stored twice for the same region", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		date := holiday.NewDate(2025, time.July, 9)
		first, err := repo.Store(ctx, ExtraHoliday{Date: date, Name: "Feriado estadual", Region: "SP"})
		require.NoError(t, err)

		// when
		second, err := repo.Store(ctx, ExtraHoliday{Date: date, Name: "Revolução Constitucionalista", Region: "SP"})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
		all, err := repo.GetAll(ctx, "SP")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Revolução Constitucionalista", all[0].Name)
	})

	t.Run("should keep the same date apart per region", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		date := holiday.NewDate(2025, time.November, 20)

		// when
		_, err := repo.Store(ctx, ExtraHoliday{Date: date, Name: "Consciência Negra", Region: "SP"})
		require.NoError(t, err)
		_, err = repo.Store(ctx, ExtraHoliday{Date: date, Name: "Consciência Negra", Region: "RJ"})
		require.NoError(t, err)

		// then
		sp, err := repo.GetAll(ctx, "SP")
		require.NoError(t, err)
		rj, err := repo.GetAll(ctx, "RJ")
		require.NoError(t, err)
		assert.Len(t, sp, 1)
		assert.Len(t, rj, 1)
		assert.NotEqual(t, sp[0].Id, rj[0].Id)
	})
}

func TestRepositoryImpl_GetInRange(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	for _, date := range []holiday.CalendarDate{
		holiday.NewDate(2025, time.January, 25),
		holiday.NewDate(2025, time.July, 9),
		holiday.NewDate(2025, time.November, 20),
	} {
		_, err := repo.Store(ctx, ExtraHoliday{Date: date, Region: "SP"})
		require.NoError(t, err)
	}

	// when
	holidays, err := repo.GetInRange(ctx, "SP", holiday.NewDate(2025, time.July, 9), holiday.NewDate(2025, time.November, 20))

	// then
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, holiday.NewDate(2025, time.July, 9), holidays[0].Date)
	assert.Equal(t, holiday.NewDate(2025, time.November, 20), holidays[1].Date)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	t.Run("should delete and return the holiday", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		stored, err := repo.Store(ctx, ExtraHoliday{Date: holiday.NewDate(2025, time.January, 25), Name: "Aniversário", Region: "SP"})
		require.NoError(t, err)

		// when
		deleted, err := repo.Delete(ctx, stored.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, stored, deleted)
		all, err := repo.GetAll(ctx, "SP")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("should report a missing holiday", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		_, err := repo.Delete(ctx, 999)

		assert.ErrorIs(t, err, ErrExtraHolidayNotFound)
	})
}
