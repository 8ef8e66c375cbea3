package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LataroCaballero/clinical-agenda/internal/config"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  agenda config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Agenda.DayStart = promptValue(reader, "Day start", cfg.Agenda.DayStart)
	cfg.Agenda.DayEnd = promptValue(reader, "Day end", cfg.Agenda.DayEnd)
	cfg.Agenda.Workdays = promptSlice(reader, "Workdays (comma-separated)", cfg.Agenda.Workdays)
	cfg.Agenda.SurgeryDays = promptSlice(reader, "Surgery days (YYYY-MM-DD, comma-separated)", cfg.Agenda.SurgeryDays)
	cfg.Grid.ViewStart = promptValue(reader, "Grid view start", cfg.Grid.ViewStart)
	cfg.Grid.ViewEnd = promptValue(reader, "Grid view end", cfg.Grid.ViewEnd)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[agenda]")
	fmt.Printf("  day_start     = %s\n", cfg.Agenda.DayStart)
	fmt.Printf("  day_end       = %s\n", cfg.Agenda.DayEnd)
	fmt.Printf("  workdays      = %s\n", strings.Join(cfg.Agenda.Workdays, ", "))
	if len(cfg.Agenda.SurgeryDays) > 0 {
		fmt.Printf("  surgery_days  = %s\n", strings.Join(cfg.Agenda.SurgeryDays, ", "))
	}
	if len(cfg.Agenda.Blocked) > 0 {
		fmt.Printf("  blocked       = %d entries\n", len(cfg.Agenda.Blocked))
	}
	if len(cfg.Agenda.RecurringBlocks) > 0 {
		fmt.Printf("  recurring     = %d rules\n", len(cfg.Agenda.RecurringBlocks))
	}
	fmt.Println("\n[grid]")
	fmt.Printf("  view_start    = %s\n", cfg.Grid.ViewStart)
	fmt.Printf("  view_end      = %s\n", cfg.Grid.ViewEnd)
	fmt.Printf("  snap_minutes  = %d\n", cfg.Grid.SnapMinutes)
	fmt.Printf("  hour_height   = %.0f\n", cfg.Grid.HourHeight)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme         = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
