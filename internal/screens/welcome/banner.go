package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/ui/theme"
)

// RenderBanner renders the course title letter-spaced inside a double
// border. Titles that would not fit are shown plain.
func RenderBanner(title string, width int) string {
	spaced := strings.Join(strings.Split(strings.ToUpper(title), ""), " ")

	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if lipgloss.Width(spaced)+6 > width {
		return style.Render(title)
	}
	return style.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2).
		Render(spaced)
}
