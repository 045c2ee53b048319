package ui

import (
	"image/color"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// BarColor maps a job color to a terminal color. Bars are the chart, so
// unlike ThemeBg they are never dropped; lipgloss down-samples the hex
// on terminals without true color.
func BarColor(c color.RGBA) lipgloss.TerminalColor {
	cf, _ := colorful.MakeColor(c)
	return lipgloss.Color(cf.Hex())
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Hover borders
	Bold      lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// UI Elements
	Border lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
	Error  lipgloss.AdaptiveColor

	// Styles
	Base      lipgloss.Style
	Title     lipgloss.Style
	Status    lipgloss.Style
	StatusOn  lipgloss.Style // status line while a bar is hovered
	StatusErr lipgloss.Style
	Axis      lipgloss.Style
	RowLabel  lipgloss.Style
	MutedText lipgloss.Style
	BarText   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Bold:      lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"},
		Highlight: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#E51C23"}, // Red

		Border: lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Muted:  lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Error:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Title = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Status = r.NewStyle().Foreground(t.Subtext)
	t.StatusOn = r.NewStyle().
		Foreground(ThemeFg("#F8F8F2")).
		Background(ThemeBg("#44475A")).
		Bold(true)
	t.StatusErr = r.NewStyle().Foreground(t.Error).Bold(true)
	t.Axis = r.NewStyle().Foreground(t.Border)
	t.RowLabel = r.NewStyle().Foreground(t.Secondary)
	t.MutedText = r.NewStyle().Foreground(t.Muted)

	// Bar fills are light (channels >= 150), so labels are always dark.
	t.BarText = r.NewStyle().Foreground(lipgloss.Color("#000000"))

	return t
}

// BorderStyle returns the style used for the edge cells of a bar in the
// given hover border state.
func (t Theme) BorderStyle(fill lipgloss.TerminalColor, highlight bool) lipgloss.Style {
	fg := lipgloss.TerminalColor(t.Bold)
	if highlight {
		fg = t.Highlight
	}
	return t.Renderer.NewStyle().Background(fill).Foreground(fg).Bold(true)
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
