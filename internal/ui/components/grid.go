package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/ui/theme"
)

// ModuleTile is one topic in the module grid.
type ModuleTile struct {
	Number   int // 1-based
	Label    string
	Unlocked bool
	Viewed   bool
	Current  bool
}

// ModuleGrid renders topic tiles that can be opened by number.
type ModuleGrid struct {
	Tiles   []ModuleTile
	Compact bool // stack tiles vertically
}

// View renders the grid.
func (g ModuleGrid) View() string {
	tiles := make([]string, 0, len(g.Tiles))
	for _, t := range g.Tiles {
		icon := "🔒"
		switch {
		case t.Viewed:
			icon = "✓"
		case t.Unlocked:
			icon = "○"
		}
		label := fmt.Sprintf("%d  %s  %s", t.Number, icon, t.Label)

		style := theme.TileLocked
		switch {
		case t.Current:
			style = theme.TileCurrent
		case t.Unlocked:
			style = theme.TileOpen
		}
		tiles = append(tiles, style.Render(label))
	}

	if g.Compact {
		return lipgloss.JoinVertical(lipgloss.Left, tiles...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
