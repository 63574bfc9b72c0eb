package extra_holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store inserts h, or renames the holiday already stored for the same date and region.
	Store(ctx context.Context, h ExtraHoliday) (ExtraHoliday, error)
	GetAll(ctx context.Context, region string) ([]ExtraHoliday, error)
	GetInRange(ctx context.Context, region string, from, to holiday.CalendarDate) ([]ExtraHoliday, error)
	// Delete removes the holiday and returns what was removed.
	Delete(ctx context.Context, id int) (ExtraHoliday, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, h ExtraHoliday) (ExtraHoliday, error) {
	query := `INSERT INTO extra_holiday (holiday_date, name, region)
			  VALUES ($1::date, $2, $3)
			  ON CONFLICT (holiday_date, region) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id`

	err := r.db.QueryRow(ctx, query, h.Date.String(), h.Name, h.Region).Scan(&h.Id)
	if err != nil {
		err := fmt.Errorf("could not store extra holiday: %w", err)
		log.Error(err)
		return ExtraHoliday{}, err
	}
	return h, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, region string) ([]ExtraHoliday, error) {
	query := `SELECT id, holiday_date, name, region FROM extra_holiday
			  WHERE region = $1 ORDER BY holiday_date`
	return r.query(ctx, query, region)
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, region string, from, to holiday.CalendarDate) ([]ExtraHoliday, error) {
	query := `SELECT id, holiday_date, name, region FROM extra_holiday
			  WHERE region = $1 AND holiday_date BETWEEN $2::date AND $3::date
			  ORDER BY holiday_date`
	return r.query(ctx, query, region, from.String(), to.String())
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (ExtraHoliday, error) {
	query := `DELETE FROM extra_holiday WHERE id = $1 RETURNING id, holiday_date, name, region`

	h, err := scanExtraHoliday(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ExtraHoliday{}, ErrExtraHolidayNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not delete extra holiday %d: %w", id, err)
		log.Error(err)
		return ExtraHoliday{}, err
	}
	return h, nil
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]ExtraHoliday, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query extra holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	holidays := make([]ExtraHoliday, 0)
	for rows.Next() {
		h, err := scanExtraHoliday(rows)
		if err != nil {
			err := fmt.Errorf("could not scan extra holiday: %w", err)
			log.Error(err)
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return holidays, nil
}

func scanExtraHoliday(row pgx.Row) (ExtraHoliday, error) {
	var h ExtraHoliday
	var date time.Time
	if err := row.Scan(&h.Id, &date, &h.Name, &h.Region); err != nil {
		return ExtraHoliday{}, err
	}
	h.Date = holiday.DateOf(date, time.UTC)
	return h, nil
}
