// Package styles provides shared lipgloss styles for CLI and TUI
// components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/storekeep/internal/core/notify"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Semantic styles rebuilt by SetTheme. Read, never reassigned by callers.
var (
	TextStyle       lipgloss.Style
	TextMutedStyle  lipgloss.Style
	TitleStyle      lipgloss.Style
	SuccessStyle    lipgloss.Style
	WarningStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	InfoStyle       lipgloss.Style
	SpinnerStyle    lipgloss.Style
	ToastBorder     lipgloss.Style
	TabStyle        lipgloss.Style
	ActiveTabStyle  lipgloss.Style
	StatusBarStyle  lipgloss.Style
	TableHeaderFg   lipgloss.Color
	TableSelectedBg lipgloss.Color
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme rebuilds all semantic styles from the palette.
func SetTheme(p Palette) {
	TextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Primary)
	ToastBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	TabStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Padding(0, 2)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TableHeaderFg = p.Secondary
	TableSelectedBg = p.Surface
}

// CategoryStyle returns the style for a notification category.
func CategoryStyle(c notify.Category) lipgloss.Style {
	switch c {
	case notify.CategorySuccess:
		return SuccessStyle
	case notify.CategoryError:
		return ErrorStyle
	case notify.CategoryWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// CategoryIcon returns the glyph shown next to a notification.
func CategoryIcon(c notify.Category) string {
	switch c {
	case notify.CategorySuccess:
		return "✓"
	case notify.CategoryError:
		return "✗"
	case notify.CategoryWarning:
		return "!"
	default:
		return "•"
	}
}
