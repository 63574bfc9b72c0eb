package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/klokku/prazos/pkg/holiday"
	"github.com/spf13/cobra"
)

func newHolidaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the holidays of a year (current year by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := app.Calendar.DateOf(app.Clock.Now()).Year
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = parsed
			}
			extra, err := app.extraDates(cmd.Context())
			if err != nil {
				return err
			}

			holidays := app.Calendar.HolidaysInPeriod(holiday.NewDate(year, 1, 1), holiday.NewDate(year, 12, 31), extra)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, h := range holidays {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.Date, h.Date.Weekday().String()[:3], h.Name, h.Category)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newHolidaysCheckCmd(app))
	return cmd
}

func newHolidaysCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <date>",
		Short: "Tell whether a date is a holiday, a weekend or a business day",
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

			info := app.Calendar.Describe(date, extra)
			out := cmd.OutOrStdout()
			switch {
			case info.IsHoliday:
				fmt.Fprintf(out, "%s (%s) is a holiday: %s\n", date, info.Weekday, info.HolidayName)
			case info.IsWeekend && info.CoincidingHoliday != "":
				fmt.Fprintf(out, "%s (%s) is a weekend day, %s falls on it\n", date, info.Weekday, info.CoincidingHoliday)
			case info.IsWeekend:
				fmt.Fprintf(out, "%s (%s) is a weekend day\n", date, info.Weekday)
			default:
				fmt.Fprintf(out, "%s (%s) is a business day\n", date, info.Weekday)
			}
			return nil
		},
	}
}
