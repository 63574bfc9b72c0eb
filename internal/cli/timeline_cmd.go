package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/klokku/prazos/pkg/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Synthetic milestone timelines",
	}

	cmd.AddCommand(newTimelineSampleCmd(app))
	return cmd
}

func newTimelineSampleCmd(app *App) *cobra.Command {
	var seed int64
	var count int
	var completed bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate plausible milestone sets; the same seed yields the same sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			config := app.Timeline
			config.Reference = app.Clock.Now()
			config.Completed = completed

			synthesizer := timeline.NewSynthesizer(utils.NewRand(seed, app.Clock), app.Arithmetic)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tSTART\tREVIEW START\tREVIEW DUE\tDUE\tCLOSED")
			for _, sample := range synthesizer.GenerateMany(config, count) {
				fmt.Fprintf(w, "%s\t%s", sample.ID, sample.Status)
				for _, kind := range []deadline.MilestoneKind{deadline.Start, deadline.ReviewStart, deadline.ReviewDue, deadline.Due, deadline.Closed} {
					fmt.Fprintf(w, "\t%s", formatMilestone(sample.Milestones, kind))
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().IntVar(&count, "count", 1, "number of samples")
	cmd.Flags().BoolVar(&completed, "completed", false, "generate closed items")
	return cmd
}

func formatMilestone(ms deadline.MilestoneSet, kind deadline.MilestoneKind) string {
	t := ms.Get(kind)
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
