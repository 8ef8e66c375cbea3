package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// Color definitions for consistent styling across the CLI output.
var (
	colorConsultation = color.New(color.FgCyan)
	colorFollowUp     = color.New(color.FgGreen)
	colorSurgery      = color.New(color.FgRed, color.Bold)
	colorStudy        = color.New(color.FgYellow)
	colorOther        = color.New(color.FgWhite)

	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
	colorBlocked = color.New(color.FgMagenta)
)

func init() {
	// Plain pipes and dumb terminals get monochrome output.
	if termenv.ColorProfile() == termenv.Ascii {
		color.NoColor = true
	}
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// typeColor returns the printer for an appointment type.
func typeColor(t appointment.Type) *color.Color {
	switch t {
	case appointment.TypeConsultation:
		return colorConsultation
	case appointment.TypeFollowUp:
		return colorFollowUp
	case appointment.TypeSurgery:
		return colorSurgery
	case appointment.TypeStudy:
		return colorStudy
	default:
		return colorOther
	}
}

// statusSymbol returns the one-rune marker for a status.
func statusSymbol(s appointment.Status) string {
	switch s {
	case appointment.StatusPending:
		return "○"
	case appointment.StatusConfirmed:
		return "●"
	case appointment.StatusDone:
		return "✓"
	case appointment.StatusCancelled:
		return "✗"
	case appointment.StatusNoShow:
		return "‒"
	default:
		return "?"
	}
}
