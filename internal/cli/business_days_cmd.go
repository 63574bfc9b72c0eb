package cli

import (
	"fmt"
	"strconv"

	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/holiday"
	"github.com/spf13/cobra"
)

func newBusinessDaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "business-days",
		Aliases: []string{"bd"},
		Short:   "Business-day arithmetic",
	}

	cmd.AddCommand(
		newBusinessDaysAddCmd(app),
		newBusinessDaysStepCmd(app, "next", "First business day after a date", app.Arithmetic.NextBusinessDay),
		newBusinessDaysStepCmd(app, "previous", "Last business day before a date", app.Arithmetic.PreviousBusinessDay),
		newBusinessDaysDiffCmd(app),
	)
	return cmd
}

func newBusinessDaysAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add <date> <n>",
		Short:   "Move n business days from a date; negative n moves backwards",
		Example: "  prazos business-days add 2025-04-17 1\n  prazos business-days add 2025-04-22 -- -2",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := app.parseDate(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid number of days %q", args[1])
			}
			if !business_day.ValidOffset(n) {
				return fmt.Errorf("number of days must be between -%d and %d", business_day.MaxBusinessDays, business_day.MaxBusinessDays)
			}
			extra, err := app.extraDates(cmd.Context())
			if err != nil {
				return err
			}
			printDate(cmd, app.Arithmetic.AddBusinessDays(date, n, extra))
			return nil
		},
	}
}

func newBusinessDaysStepCmd(app *App, use, short string, step func(holiday.CalendarDate, holiday.Dates) holiday.CalendarDate) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <date>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := app.parseDate(args[0])
			if err != nil {
				return err
			}
			extra, err := app.extraDates(cmd.Context())
			if err != nil {
				return err
			}
			printDate(cmd, step(date, extra))
			return nil
		},
	}
}

func newBusinessDaysDiffCmd(app *App) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Count the days after from up to and including to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := app.parseDate(args[0])
			if err != nil {
				return err
			}
			to, err := app.parseDate(args[1])
			if err != nil {
				return err
			}
			countingMode, err := deadline.ParseCountingMode(mode)
			if err != nil {
				return err
			}

			days := business_day.CalendarDaysDiff(from, to)
			if countingMode == deadline.BusinessDays {
				extra, err := app.extraDates(cmd.Context())
				if err != nil {
					return err
				}
				days = app.Arithmetic.BusinessDaysDiff(from, to, extra)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s days\n", days, countingMode)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(deadline.BusinessDays), "business or calendar")
	return cmd
}

func printDate(cmd *cobra.Command, date holiday.CalendarDate) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, date.Weekday())
}
