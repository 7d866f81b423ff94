// Package ui provides the visual styling and shared components for the
// storefront terminal interface.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. The storefront brand is the reference blue with neutral
// grays; semantic colors are shared between modes.
var (
	// Light mode colors (default)
	LightBackground = lipgloss.Color("#f9fafb")
	LightForeground = lipgloss.Color("#1f2937")
	LightPrimary    = lipgloss.Color("#2563eb") // brand blue
	LightAccent     = lipgloss.Color("#3b82f6")
	LightMuted      = lipgloss.Color("#9ca3af")
	LightBorder     = lipgloss.Color("#e5e7eb")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#111827")
	DarkForeground = lipgloss.Color("#f3f4f6")
	DarkPrimary    = lipgloss.Color("#60a5fa")
	DarkAccent     = lipgloss.Color("#3b82f6")
	DarkMuted      = lipgloss.Color("#6b7280")
	DarkBorder     = lipgloss.Color("#374151")
	DarkCard       = lipgloss.Color("#1f2937")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#f59e0b")
)

// Theme holds the active color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal environment, defaulting to
// light mode.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; ANSI backgrounds 0-6 and 8 are
	// dark.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[1]); err == nil {
				if (bg >= 0 && bg <= 6) || bg == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("STOREFRONT_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeByName resolves a config theme name; anything but "light" and
// "dark" auto-detects.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds the styled components used across the interface.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Panel   lipgloss.Style
	Sidebar lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Price    lipgloss.Style

	// Forms
	Label      lipgloss.Style
	FieldError lipgloss.Style

	// Status
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style

	// Checkout steps
	StepActive lipgloss.Style
	StepDone   lipgloss.Style
	StepTodo   lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldError: lipgloss.NewStyle().
			Foreground(Destructive),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Selected: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		StepActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		StepDone: lipgloss.NewStyle().
			Foreground(Success),

		StepTodo: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
