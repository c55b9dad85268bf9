package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Grid   GridTheme
	Items  ItemTheme

	// completion ramp endpoints, 0% and 100%.
	low, high colorful.Color
}

// FooterTheme groups styles used by the bottom status and key hint bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// PanelTheme styles the framed day and info panes.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// GridTheme styles the week and month calendar cells.
type GridTheme struct {
	Cell     lipgloss.Style
	Header   lipgloss.Style
	Outside  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Drop     lipgloss.Style
}

// ItemTheme styles item rows inside cells and the day pane.
type ItemTheme struct {
	Normal  lipgloss.Style
	Done    lipgloss.Style
	Focused lipgloss.Style
	Carried lipgloss.Style
	Detail  lipgloss.Style
}

// Default returns the built-in theme for dark terminals.
func Default() Theme {
	return build("212", "63", "244", "15")
}

// Light returns the built-in theme for light terminals.
func Light() Theme {
	return build("161", "27", "245", "0")
}

// For picks Default or Light.
func For(dark bool) Theme {
	if dark {
		return Default()
	}
	return Light()
}

func build(accent, selected, muted, text string) Theme {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(muted))
	low, _ := colorful.Hex("#e06c75")
	high, _ := colorful.Hex("#98c379")

	return Theme{
		Footer: FooterTheme{
			Help:   mutedStyle,
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Grid: GridTheme{
			Cell: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color(muted)),
			Header:   lipgloss.NewStyle().Bold(true),
			Outside:  mutedStyle,
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Underline(true),
			Selected: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(selected)),
			Drop:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(accent)),
		},
		Items: ItemTheme{
			Normal:  lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
			Done:    mutedStyle.Strikethrough(true),
			Focused: lipgloss.NewStyle().Reverse(true),
			Carried: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Italic(true),
			Detail:  mutedStyle,
		},
		low:  low,
		high: high,
	}
}

// Completion returns a style coloured along a red to green ramp for a
// percentage between 0 and 100.
func (t Theme) Completion(percent int) lipgloss.Style {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c := t.low.BlendLuv(t.high, float64(percent)/100).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true)
}
