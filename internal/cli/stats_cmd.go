package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/klokku/prazos/pkg/deadline"
	"github.com/spf13/cobra"
)

type statsFlags struct {
	milestones deadline.RawMilestones
	status     string
	mode       string
	now        string
}

func newStatsCmd(app *App) *cobra.Command {
	var flags statsFlags
	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Compute elapsed, remaining and overdue days of a milestone set",
		Example: "  prazos stats --start 2025-04-14 --due 2025-04-25 --now 2025-04-23T10:00:00-03:00",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request(app)
			if err != nil {
				return err
			}
			stats, err := app.Deadlines.Compute(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printStats(cmd, stats, request.Mode)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.milestones.Start, "start", "", "start timestamp (RFC3339 or YYYY-MM-DD)")
	f.StringVar(&flags.milestones.ReviewStart, "review-start", "", "review start timestamp")
	f.StringVar(&flags.milestones.ReviewDue, "review-due", "", "review due timestamp")
	f.StringVar(&flags.milestones.Due, "due", "", "due timestamp")
	f.StringVar(&flags.milestones.Closed, "closed", "", "closed timestamp")
	f.StringVar(&flags.status, "status", "", "workflow status, e.g. in_progress")
	f.StringVar(&flags.mode, "mode", string(deadline.BusinessDays), "business or calendar")
	f.StringVar(&flags.now, "now", "", "evaluate at this instant instead of the current time")
	return cmd
}

func (f statsFlags) request(app *App) (deadline.Request, error) {
	mode, err := deadline.ParseCountingMode(f.mode)
	if err != nil {
		return deadline.Request{}, err
	}
	status, err := deadline.ParseStatus(f.status)
	if err != nil {
		return deadline.Request{}, err
	}
	request := deadline.Request{Milestones: f.milestones, Mode: mode, Status: status}
	if f.now != "" {
		now, ok := deadline.ParseTimestamp(f.now, app.Calendar.Location())
		if !ok {
			return deadline.Request{}, fmt.Errorf("invalid --now %q", f.now)
		}
		request.Now = &now
	}
	return request, nil
}

func printStats(cmd *cobra.Command, stats deadline.Stats, mode deadline.CountingMode) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Status\t%s\n", stats.DerivedStatus)
	fmt.Fprintf(w, "Elapsed\t%d %s days\n", stats.Elapsed, mode)
	fmt.Fprintf(w, "Total\t%d %s days\n", stats.Total, mode)
	fmt.Fprintf(w, "Remaining\t%d %s days\n", stats.Remaining, mode)
	fmt.Fprintf(w, "Overdue\t%d %s days\n", stats.Overdue, mode)
	fmt.Fprintf(w, "Progress\t%d%%\n", stats.ProgressPercent)
	if stats.IsInconsistent {
		fmt.Fprintf(w, "Inconsistent\t%s\n", stats.InconsistencyDetail)
	}
	return w.Flush()
}
