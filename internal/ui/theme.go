package ui

import "github.com/charmbracelet/lipgloss"

// 調色盤
var (
	Tomato  = lipgloss.Color("#E4572E")
	Basil   = lipgloss.Color("#3BB273")
	Saffron = lipgloss.Color("#F3A712")
	Plum    = lipgloss.Color("#7768AE")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	Success = lipgloss.NewStyle().
		Foreground(Basil)

	Error = lipgloss.NewStyle().
		Foreground(Tomato).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Saffron)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Plum).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Saffron).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	Badge = lipgloss.NewStyle().
		Foreground(Bright).
		Padding(0, 1).
		Bold(true)
)

const (
	IconOk    = "✓ "
	IconError = "✗ "
	IconWarn  = "! "
	IconDot   = "·"
)

// CoverageStyle 依覆蓋率挑選徽章顏色
func CoverageStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 100:
		return Badge.Background(Basil)
	case percent >= 75:
		return Badge.Background(Plum)
	default:
		return Badge.Background(Saffron)
	}
}
