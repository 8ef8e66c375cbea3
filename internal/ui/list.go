package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in a date range",
		Long: `List the appointments scheduled within a date range.

If no dates are specified, lists this week's appointments.
If only --start is specified, lists that single day.
Use --ics to load the appointments from a calendar file.`,
		Example: `  agenda list --ics clinic.ics
  agenda list --ics clinic.ics --start=2026-09-07
  agenda list --ics clinic.ics --start=2026-09-07 --end=2026-09-11`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.preload(); err != nil {
				return err
			}

			from, to, err := resolveRange(startDate, endDate)
			if err != nil {
				return err
			}

			appts, err := a.scheduler.ListRange(context.Background(), from, to)
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}

			if len(appts) == 0 {
				fmt.Println("No appointments found in the specified date range.")
				return nil
			}

			var currentDate string
			for _, appt := range appts {
				date := dateutil.DayKey(appt.Start)
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					colorHeader.Printf("=== %s ===\n", date)
					currentDate = date
				}

				line := fmt.Sprintf("  %s %s-%s %s",
					statusSymbol(appt.Status),
					appt.Start.Format("15:04"),
					appt.End.Format("15:04"),
					appt.PatientName,
				)
				typeColor(appt.Type).Println(line, colorMuted.Sprintf("(%s)", appt.Type.Info().Label))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to this week's Monday)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, inclusive, defaults to start date)")

	return cmd
}

// resolveRange turns the --start/--end flags into a half-open interval.
func resolveRange(startDate, endDate string) (from, to time.Time, err error) {
	switch {
	case startDate == "" && endDate == "":
		from = dateutil.WeekStart(time.Now())
		to = from.AddDate(0, 0, 7)
	case endDate == "":
		from, err = dateutil.ParseDayKey(startDate)
		if err != nil {
			return from, to, err
		}
		to = from.AddDate(0, 0, 1)
	default:
		from, err = dateutil.ParseDayKey(startDate)
		if err != nil {
			return from, to, err
		}
		var end time.Time
		end, err = dateutil.ParseDayKey(endDate)
		if err != nil {
			return from, to, err
		}
		if end.Before(from) {
			return from, to, dateutil.ErrEndDateBeforeStart
		}
		to = end.AddDate(0, 0, 1)
	}
	return from, to, nil
}
