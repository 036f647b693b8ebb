package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	doneStyle       = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// palette holds the theme-dependent styles.
type palette struct {
	accent   lipgloss.Style
	selected lipgloss.Style
	private  lipgloss.Style
}

func paletteFor(theme string) palette {
	if theme == "dark" {
		return palette{
			accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")),
			private:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")),
		}
	}
	return palette{
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4f46e5")).Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#4f46e5")),
		private:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7c3aed")),
	}
}
