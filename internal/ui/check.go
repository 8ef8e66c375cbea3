package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/agenda"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
)

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Check whether a day accepts bookings",
		Long: `Report the availability of a calendar day.

Surgery days always accept bookings, even inside blocked ranges.
Without a date argument, today is checked.`,
		Example: `  agenda check
  agenda check 2026-09-14`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			day := time.Now()
			if len(args) == 1 {
				parsed, err := dateutil.ParseDayKey(args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
				}
				day = parsed
			}

			resolver, err := agenda.NewResolver(a.config.AgendaSettings())
			if err != nil {
				return fmt.Errorf("building availability resolver: %w", err)
			}

			key := dateutil.DayKey(day)
			switch {
			case resolver.IsSurgeryDay(day):
				colorSurgery.Printf("%s is a surgery day: bookings allowed all day\n", key)
			case resolver.IsBlocked(day):
				colorBlocked.Printf("%s is blocked: no bookings\n", key)
			default:
				hours, _ := resolver.HoursFor(day)
				fmt.Printf("%s is open: %s-%s\n", key, hours.Start, hours.End)
			}
			return nil
		},
	}
}
