package components

import (
	"github.com/abhisek/coursewalk/internal/ui/theme"
)

// CardWidth returns the inner width used for course cards so that every
// card lines up regardless of its content.
func CardWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

// Card wraps content in the card border. A locked card gets a warning
// border; help uses the accent color.
func Card(content string, width int, locked, help bool) string {
	style := theme.Card
	switch {
	case locked:
		style = theme.LockedCard
	case help:
		style = theme.HelpCard
	}
	return style.Width(width).Render(content)
}
