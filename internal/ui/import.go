package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
)

// The full-range window used to print everything that was imported.
var (
	minTime = time.Time{}
	maxTime = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [calendar.ics]",
		Short: "Import appointments from an iCalendar file",
		Long: `Import the VEVENTs of an iCalendar file as appointments.

Recurring events are expanded into concrete visits. Events that
overlap an existing booking are skipped. The imported appointments
are printed grouped by day.`,
		Example: `  agenda import clinic.ics`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			count, err := loadCalendar(ctx, a.scheduler, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d appointments from %s\n", count, args[0])

			appts, err := a.scheduler.ListRange(ctx, minTime, maxTime)
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
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
				typeColor(appt.Type).Printf("  %s %s-%s %s\n",
					statusSymbol(appt.Status),
					appt.Start.Format("15:04"),
					appt.End.Format("15:04"),
					appt.PatientName,
				)
			}
			return nil
		},
	}
}
