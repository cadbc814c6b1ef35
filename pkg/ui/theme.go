package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/model"
)

// Theme bundles the colors and base styles every component draws with.
// Components never construct styles from raw hex values; they go through
// the theme so the plain variant stays genuinely plain.
type Theme struct {
	Name     string
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	// Category colors, one per model.Category.
	Urgent lipgloss.AdaptiveColor
	Normal lipgloss.AdaptiveColor
	Low    lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
}

// DefaultTheme returns the dark theme on the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return NewTheme("dark", r)
}

// NewTheme builds the named theme on the given renderer. Unknown names
// fall back to dark, matching config validation upstream.
func NewTheme(name string, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	switch name {
	case "light":
		return lightTheme(r)
	case "plain":
		return plainTheme(r)
	default:
		return darkTheme(r)
	}
}

func darkTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Name:      "dark",
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#bd93f9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#8be9fd"},
		Muted:     lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#6272a4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#475569", Dark: "#a6accd"},
		Highlight: lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#44475a"},
		Border:    lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#44475a"},
		Urgent:    lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ff5555"},
		Normal:    lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#50fa7b"},
		Low:       lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#6272a4"},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#f8f8f2"})
	t.Selected = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#f8f8f2"}).
		Background(t.Highlight).
		Bold(true)
	return t
}

func lightTheme(r *lipgloss.Renderer) Theme {
	t := darkTheme(r)
	t.Name = "light"
	// Same palette; the adaptive colors already carry the light values.
	// Forcing a distinct selected background keeps the cursor visible on
	// terminals that misreport their background.
	t.Selected = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#0f172a"}).
		Background(lipgloss.AdaptiveColor{Light: "#dbeafe", Dark: "#dbeafe"}).
		Bold(true)
	return t
}

func plainTheme(r *lipgloss.Renderer) Theme {
	// Empty adaptive colors render as no-ops, so everything comes out
	// unstyled except the cursor, which stays readable via reverse video.
	return Theme{
		Name:     "plain",
		Renderer: r,
		Base:     r.NewStyle(),
		Selected: r.NewStyle().Reverse(true),
	}
}

// CategoryColor returns the theme color for a category.
func (t Theme) CategoryColor(c model.Category) lipgloss.AdaptiveColor {
	switch c {
	case model.CategoryUrgent:
		return t.Urgent
	case model.CategoryLow:
		return t.Low
	default:
		return t.Normal
	}
}

// CategoryIcon returns the single-cell marker for a category.
func (t Theme) CategoryIcon(c model.Category) string {
	switch c {
	case model.CategoryUrgent:
		return "▲"
	case model.CategoryLow:
		return "▽"
	default:
		return "●"
	}
}
