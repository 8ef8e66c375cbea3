// Package ui implements the command line interface for clinical-agenda.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/config"
	"github.com/LataroCaballero/clinical-agenda/internal/ics"
	"github.com/LataroCaballero/clinical-agenda/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	scheduler appointment.Scheduler
	config    *config.Config
	root      *cobra.Command
	icsPath   string // optional calendar file preloaded into the scheduler
}

// NewApp creates a new CLI application with the given scheduler and config.
func NewApp(s appointment.Scheduler, cfg *config.Config) *App {
	if s == nil {
		s = appointment.NewMemoryScheduler()
	}
	a := &App{scheduler: s, config: cfg}

	a.root = &cobra.Command{
		Use:   "agenda",
		Short: "An appointment calendar for a medical practice",
		Long: `Agenda is the scheduling calendar of a clinic.

It renders a week of appointments as a time grid, packs overlapping
bookings side by side, and lets you reschedule them by dragging with
the mouse. Days can be blocked off, with surgery days overriding
every block.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.preload(); err != nil {
				return err
			}
			return tui.Run(a.scheduler, a.config)
		},
	}

	a.root.PersistentFlags().StringVar(&a.icsPath, "ics", "", "Calendar file (.ics) to load appointments from")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("agenda %s (commit: %s)\n", Version, Commit)
		},
	}
}

// preload loads the --ics calendar into the scheduler, if one was given.
func (a *App) preload() error {
	if a.icsPath == "" {
		return nil
	}
	_, err := loadCalendar(context.Background(), a.scheduler, a.icsPath)
	return err
}

// loadCalendar imports an ICS file into the scheduler and returns how many
// appointments were stored. Occurrences that overlap existing bookings are
// skipped.
func loadCalendar(ctx context.Context, s appointment.Scheduler, path string) (int, error) {
	appts, err := ics.ImportFile(path, ics.Options{})
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", path, err)
	}
	count := 0
	for _, appt := range appts {
		if err := s.Create(ctx, appt); err != nil {
			continue
		}
		count++
	}
	return count, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
