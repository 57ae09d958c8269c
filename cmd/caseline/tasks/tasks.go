// Package taskscmder provides the tasks command for working with recurring
// task schedules locally.
package taskscmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caselinehq/caseline/pkg/cliui"
	"github.com/caselinehq/caseline/pkg/schedule"
)

const dateLayout = "2006-01-02"

type previewCommander struct {
	frequency string
	interval  int
	start     string
	count     int
}

const tasksLongDesc string = `Work with recurring task schedules.

Subcommands:
  caseline tasks preview    Preview due dates for a recurrence rule`

const tasksShortDesc string = "Work with recurring task schedules"

func NewTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: tasksShortDesc,
		Long:  tasksLongDesc,
	}

	cmd.AddCommand(newPreviewCmd())

	return cmd
}

const previewLongDesc string = `Preview the due dates a recurrence rule generates.

Computes dates locally with the same rules the platform applies: monthly
recurrence anchors on the start's day-of-month and clamps to the last day
of shorter months.

Examples:
  caseline tasks preview --frequency weekly --start 2026-09-01
  caseline tasks preview --frequency monthly --interval 2 --start 2026-01-31 --count 6`

const previewShortDesc string = "Preview due dates for a recurrence rule"

func newPreviewCmd() *cobra.Command {
	cmder := &previewCommander{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: previewShortDesc,
		Long:  previewLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.frequency, "frequency", "f", string(schedule.Weekly), "Recurrence frequency (daily, weekly, monthly)")
	cmd.Flags().IntVarP(&cmder.interval, "interval", "i", 1, "Recur every N frequency units")
	cmd.Flags().StringVarP(&cmder.start, "start", "s", "", "First due date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVarP(&cmder.count, "count", "n", 5, "Number of occurrences to preview")

	return cmd
}

func (c *previewCommander) run() error {
	start := time.Now()
	if c.start != "" {
		parsed, err := time.ParseInLocation(dateLayout, c.start, time.Local)
		if err != nil {
			return fmt.Errorf("parsing start date %q: %w", c.start, err)
		}
		start = parsed
	}

	rule := schedule.Rule{
		Frequency: schedule.Frequency(c.frequency),
		Interval:  c.interval,
	}

	dates, err := schedule.Occurrences(start, rule, c.count)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s every %d %s from %s\n\n",
		cliui.KeyStyle.Render("Recurs:"),
		rule.Interval,
		rule.Frequency,
		start.Format(dateLayout),
	)

	for i, d := range dates {
		fmt.Printf("  %2d. %s %s\n",
			i+1,
			d.Format(dateLayout),
			cliui.DimStyle.Render(d.Format("Mon")),
		)
	}
	fmt.Println()

	return nil
}
