// Package style holds the colours and glyphs shared by log output and rendered reports.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#0EA5E9")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Rendering styles for reports printed to stdout.
var (
	Heading = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Key     = lipgloss.NewStyle().Foreground(Muted)
	Secret  = lipgloss.NewStyle().Foreground(Yellow)
	Success = lipgloss.NewStyle().Foreground(Green)
	Failure = lipgloss.NewStyle().Foreground(Red)
)
