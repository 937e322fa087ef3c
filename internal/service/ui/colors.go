package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so the terminal theme decides the exact shade.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	SelectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// Gains are green, losses red.
	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// Cursor marks the highlighted entry of a choice list.
const Cursor = "›"

// Choices renders a vertical list with the entry at cursor highlighted.
func Choices(items []string, cursor int) string {
	var out string
	for i, it := range items {
		if i == cursor {
			out += SelectedStyle.Render(Cursor+" "+it) + "\n"
		} else {
			out += ItemStyle.Render("  "+it) + "\n"
		}
	}
	return out
}
