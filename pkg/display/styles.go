package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette, light and dark variants
var (
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

type styles struct {
	heading  lipgloss.Style
	muted    lipgloss.Style
	install  lipgloss.Style
	upgrade  lipgloss.Style
	remove   lipgloss.Style
	warning  lipgloss.Style
	errStyle lipgloss.Style
	path     lipgloss.Style
	pkg      lipgloss.Style
}

// newStyles binds the palette to w. Plain output uses the ASCII profile
// so every style renders as bare text.
func newStyles(w io.Writer, plain bool) styles {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		heading:  r.NewStyle().Foreground(headingColor).Bold(true),
		muted:    r.NewStyle().Foreground(mutedColor),
		install:  r.NewStyle().Foreground(successColor).Bold(true),
		upgrade:  r.NewStyle().Foreground(infoColor).Bold(true),
		remove:   r.NewStyle().Foreground(errorColor).Bold(true),
		warning:  r.NewStyle().Foreground(warningColor).Bold(true),
		errStyle: r.NewStyle().Foreground(errorColor).Bold(true),
		path:     r.NewStyle().Foreground(pathColor),
		pkg:      r.NewStyle().Bold(true),
	}
}
