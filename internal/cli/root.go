package cli

import (
	"context"
	"fmt"

	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/holiday"
	"github.com/klokku/prazos/pkg/timeline"
	"github.com/spf13/cobra"
)

// App holds what the commands need. Only Serve touches the database.
type App struct {
	Calendar   *holiday.Calendar
	Arithmetic *business_day.Arithmetic
	Deadlines  deadline.Service
	ExtraDates holiday.ExtraDatesProvider
	// Timeline holds the sample defaults; Reference is replaced by the clock reading.
	Timeline timeline.GenerateConfig
	Clock    utils.Clock
	Serve    func(ctx context.Context) error
}

// NewRootCmd creates the top-level "prazos" command and registers all subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "prazos",
		Short:         "Brazilian business-day calendar and deadline statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newHolidaysCmd(app),
		newBusinessDaysCmd(app),
		newStatsCmd(app),
		newTimelineCmd(app),
	)

	return root
}

func (a *App) extraDates(ctx context.Context) (holiday.Dates, error) {
	if a.ExtraDates == nil {
		return holiday.Dates{}, nil
	}
	extra, err := a.ExtraDates(ctx)
	if err != nil {
		return holiday.Dates{}, fmt.Errorf("loading extra holidays: %w", err)
	}
	return extra, nil
}

func (a *App) parseDate(value string) (holiday.CalendarDate, error) {
	date, ok := a.Calendar.ParseDate(value)
	if !ok {
		return holiday.CalendarDate{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}
