package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/ui/theme"
)

// OptionList is a lettered list of answer options with a cursor. It only
// tracks the cursor; recording the choice is up to the caller.
type OptionList struct {
	Prompt  string
	Options []string
	Cursor  int

	// Chosen is the submitted option or -1. Correct is the right option,
	// or -1 while it must stay hidden.
	Chosen  int
	Correct int
}

// NewOptionList creates a list with nothing chosen.
func NewOptionList(prompt string, options []string) OptionList {
	return OptionList{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
		Correct: -1,
	}
}

// Update moves the cursor with the arrow keys. The cursor stays put once a
// choice is locked in with Correct revealed.
func (o OptionList) Update(msg tea.Msg) OptionList {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || o.Correct >= 0 {
		return o
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}
	return o
}

// View renders the prompt and the options.
func (o OptionList) View() string {
	var b strings.Builder
	if o.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Prompt))
		b.WriteString("\n\n")
	}

	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && o.Correct < 0 {
			prefix = "▸ "
		}
		mark := ""
		if i == o.Chosen {
			mark = "  ●"
		}
		line := fmt.Sprintf("%s%c)  %s%s", prefix, 'A'+rune(i%26), opt, mark)

		style := theme.Unselected
		switch {
		case o.Correct >= 0 && i == o.Correct:
			style = theme.Correct
		case o.Correct >= 0 && i == o.Chosen:
			style = theme.Incorrect
		case o.Correct >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
