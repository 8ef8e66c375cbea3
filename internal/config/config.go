// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/LataroCaballero/clinical-agenda/internal/agenda"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
)

// Config holds the application configuration.
type Config struct {
	Agenda AgendaConfig `toml:"agenda"`
	Grid   GridConfig   `toml:"grid"`
	UI     UIConfig     `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// AgendaConfig holds clinic availability settings.
type AgendaConfig struct {
	Workdays        []string       `toml:"workdays"`         // e.g., ["monday", "tuesday", ...]
	DayStart        string         `toml:"day_start"`        // e.g., "08:00"
	DayEnd          string         `toml:"day_end"`          // e.g., "18:00"
	SurgeryDays     []string       `toml:"surgery_days"`     // "YYYY-MM-DD" dates, always selectable
	RecurringBlocks []string       `toml:"recurring_blocks"` // RRULE strings
	Blocked         []BlockedEntry `toml:"blocked"`
}

// BlockedEntry is a blocked day or inclusive day range.
type BlockedEntry struct {
	Date    string `toml:"date"`     // "YYYY-MM-DD"
	EndDate string `toml:"end_date"` // optional, defaults to date
}

// GridConfig holds calendar grid geometry settings.
type GridConfig struct {
	ViewStart     string  `toml:"view_start"`     // e.g., "08:00"
	ViewEnd       string  `toml:"view_end"`       // e.g., "20:00"
	SnapMinutes   int     `toml:"snap_minutes"`   // drag/resize granularity
	HourHeight    float64 `toml:"hour_height"`    // axis units per hour
	DragThreshold float64 `toml:"drag_threshold"` // click-vs-drag travel in axis units
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Agenda: AgendaConfig{
			Workdays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart: "08:00",
			DayEnd:   "18:00",
		},
		Grid: GridConfig{
			ViewStart:     "08:00",
			ViewEnd:       "20:00",
			SnapMinutes:   grid.DefaultSnapMinutes,
			HourHeight:    grid.DefaultHourHeight,
			DragThreshold: grid.DefaultDragThreshold,
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "clinical-agenda", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENDA_DAY_START"); v != "" {
		cfg.Agenda.DayStart = v
	}
	if v := os.Getenv("AGENDA_DAY_END"); v != "" {
		cfg.Agenda.DayEnd = v
	}
	if v := os.Getenv("AGENDA_WORKDAYS"); v != "" {
		cfg.Agenda.Workdays = strings.Split(v, ",")
	}
	if v := os.Getenv("AGENDA_VIEW_START"); v != "" {
		cfg.Grid.ViewStart = v
	}
	if v := os.Getenv("AGENDA_VIEW_END"); v != "" {
		cfg.Grid.ViewEnd = v
	}
	if v := os.Getenv("AGENDA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// Save writes the configuration to the default path, creating the directory
// if needed.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Agenda.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Agenda.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Agenda.DayStart >= c.Agenda.DayEnd {
		return errors.New("day_start must be before day_end")
	}

	if len(c.Agenda.Workdays) == 0 {
		return errors.New("at least one workday is required")
	}
	for _, d := range c.Agenda.Workdays {
		if _, err := dateutil.ParseWeekday(d); err != nil {
			return fmt.Errorf("invalid workday %q: %w", d, err)
		}
	}

	for _, d := range c.Agenda.SurgeryDays {
		if _, err := dateutil.ParseDayKey(d); err != nil {
			return fmt.Errorf("invalid surgery day %q: %w", d, err)
		}
	}
	for _, b := range c.Agenda.Blocked {
		if _, err := dateutil.ParseDayKey(b.Date); err != nil {
			return fmt.Errorf("invalid blocked date %q: %w", b.Date, err)
		}
		if b.EndDate != "" {
			if _, err := dateutil.ParseDayKey(b.EndDate); err != nil {
				return fmt.Errorf("invalid blocked end date %q: %w", b.EndDate, err)
			}
		}
	}

	if err := validateTime(c.Grid.ViewStart, "view_start"); err != nil {
		return err
	}
	if err := validateTime(c.Grid.ViewEnd, "view_end"); err != nil {
		return err
	}
	if c.Grid.ViewStart >= c.Grid.ViewEnd {
		return errors.New("view_start must be before view_end")
	}
	if c.Grid.SnapMinutes < 0 {
		return errors.New("snap_minutes cannot be negative")
	}

	return nil
}

// validateTime checks an "HH:MM" value.
func validateTime(s, field string) error {
	if len(s) != 5 {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	return nil
}

// AgendaSettings converts the file representation into an agenda.Config.
// Validate must have passed before calling this.
func (c *Config) AgendaSettings() agenda.Config {
	hours := agenda.DayHours{Active: true, Start: c.Agenda.DayStart, End: c.Agenda.DayEnd}
	working := make(map[time.Weekday]agenda.DayHours, len(c.Agenda.Workdays))
	for _, name := range c.Agenda.Workdays {
		if d, err := dateutil.ParseWeekday(name); err == nil {
			working[d] = hours
		}
	}

	out := agenda.Config{
		WorkingHours:    working,
		RecurringBlocks: c.Agenda.RecurringBlocks,
	}

	for _, s := range c.Agenda.SurgeryDays {
		if d, err := dateutil.ParseDayKey(s); err == nil {
			out.SurgeryDays = append(out.SurgeryDays, d)
		}
	}
	for _, b := range c.Agenda.Blocked {
		date, err := dateutil.ParseDayKey(b.Date)
		if err != nil {
			continue
		}
		br := agenda.BlockedRange{Date: date}
		if b.EndDate != "" {
			if end, err := dateutil.ParseDayKey(b.EndDate); err == nil {
				br.EndDate = end
			}
		}
		out.BlockedRanges = append(out.BlockedRanges, br)
	}

	return out
}

// TimeRange converts the grid view window into a grid.TimeRange.
func (c *Config) TimeRange() (grid.TimeRange, error) {
	return grid.NewTimeRange(c.Grid.ViewStart, c.Grid.ViewEnd)
}
