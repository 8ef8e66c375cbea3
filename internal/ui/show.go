package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show a day's appointments as laid-out columns",
		Long: `Print one day of the calendar as the grid lays it out: overlapping
appointments are packed into side-by-side columns, exactly as the
interactive view renders them.`,
		Example: `  agenda show --ics clinic.ics 2026-09-07`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.preload(); err != nil {
				return err
			}

			day := dateutil.TruncateToDay(time.Now())
			if len(args) == 1 {
				parsed, err := dateutil.ParseDayKey(args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
				}
				day = parsed
			}

			appts, err := a.scheduler.ListRange(context.Background(), day, day.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}
			if len(appts) == 0 {
				fmt.Printf("No appointments on %s.\n", dateutil.DayKey(day))
				return nil
			}

			tr, err := a.config.TimeRange()
			if err != nil {
				return err
			}
			axis := grid.NewAxis(tr, a.config.Grid.HourHeight)
			boxes := grid.PackDay(appts, axis, axis.SnapUnits(a.config.Grid.SnapMinutes))

			colorHeader.Printf("=== %s ===\n", dateutil.DayKey(day))
			width := termWidth() - 14
			if width < 20 {
				width = 20
			}
			for _, box := range boxes {
				indent := 0
				if box.TotalColumns > 1 {
					indent = box.Column * (width / box.TotalColumns)
				}
				label := fmt.Sprintf("%s-%s %s %s",
					box.Event.Start.Format("15:04"),
					box.Event.End.Format("15:04"),
					statusSymbol(box.Event.Status),
					box.Event.PatientName,
				)
				line := strings.Repeat(" ", indent) + runewidth.Truncate(label, width, "…")
				typeColor(box.Event.Type).Println("  " + line)
			}
			return nil
		},
	}
}
