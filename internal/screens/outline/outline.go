// Package outline shows a read-only overview of the learner's standing in
// every topic. It is pushed over the player and popped with Esc or O.
package outline

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/router"
	"github.com/abhisek/coursewalk/internal/screen"
	"github.com/abhisek/coursewalk/internal/ui/components"
	"github.com/abhisek/coursewalk/internal/ui/layout"
	"github.com/abhisek/coursewalk/internal/ui/theme"
)

// Row is the standing of one topic.
type Row struct {
	Number   int
	Title    string
	Current  bool
	Viewed   bool
	Unlocked bool
	Narrated bool // has a recording
	Listened bool // recording played to the end
	Answered bool
	Correct  bool
}

// OutlineScreen lists topic standings. Messages it does not handle go to
// the screen underneath so its timers keep running.
type OutlineScreen struct {
	ctl    *flow.Controller
	behind screen.Screen
	cursor int
	rows   []Row
}

var (
	_ screen.Screen          = (*OutlineScreen)(nil)
	_ screen.KeyHintProvider = (*OutlineScreen)(nil)
)

// New creates an outline over ctl. behind receives forwarded messages and
// may be nil.
func New(ctl *flow.Controller, behind screen.Screen) *OutlineScreen {
	s := &OutlineScreen{ctl: ctl, behind: behind}
	s.rows = Rows(ctl)
	for i, r := range s.rows {
		if r.Current {
			s.cursor = i
		}
	}
	return s
}

// Rows snapshots the standing of every topic.
func Rows(ctl *flow.Controller) []Row {
	seq := ctl.Sequence()
	gate := ctl.Gate()
	current := ctl.Position().CurrentIndex

	rows := make([]Row, 0, seq.TopicCount())
	for n, idx := range seq.TrainingIndices() {
		title := seq.Card(idx).Title
		res, answered := ctl.Result(title)
		rows = append(rows, Row{
			Number:   n + 1,
			Title:    title,
			Current:  idx == current,
			Viewed:   ctl.IsViewed(idx),
			Unlocked: gate.ModuleUnlocked(n + 1),
			Narrated: gate.Narration.Has(title),
			Listened: ctl.NarrationDone(title),
			Answered: answered,
			Correct:  res.IsCorrect,
		})
	}
	return rows
}

func (s *OutlineScreen) Init() tea.Cmd {
	return nil
}

func (s *OutlineScreen) Title() string {
	return "Course Outline"
}

func (s *OutlineScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *OutlineScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case "o":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case tea.MouseMsg:
		return s, nil
	}

	if s.behind == nil {
		return s, nil
	}
	_, cmd := s.behind.Update(msg)
	s.rows = Rows(s.ctl)
	return s, cmd
}

func (s *OutlineScreen) View(width, height int) string {
	cw := components.CardWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.ctl.Sequence().Course().Title))
	b.WriteString("\n\n")
	for i, r := range s.rows {
		b.WriteString(s.renderRow(r, i == s.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderAssessment())

	card := components.Card(b.String(), cw, false, false)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *OutlineScreen) renderRow(r Row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}

	var state string
	var style lipgloss.Style
	switch {
	case r.Viewed:
		state, style = "viewed", lipgloss.NewStyle().Foreground(theme.Success)
	case r.Unlocked:
		state, style = "open", lipgloss.NewStyle().Foreground(theme.Text)
	default:
		state, style = "locked", lipgloss.NewStyle().Foreground(theme.TextDim)
	}
	if r.Current {
		state += " · here"
	}

	audio := "no audio"
	if r.Narrated {
		audio = "not heard"
		if r.Listened {
			audio = "heard"
		}
	}

	answer := "-"
	if r.Answered {
		answer = "✗"
		if r.Correct {
			answer = "✓"
		}
	}

	line := fmt.Sprintf("%s%d. %-28s %-14s %-10s %s", prefix, r.Number, truncate(r.Title, 28), state, audio, answer)
	if selected {
		style = style.Bold(true)
	}
	return style.Render(line)
}

func (s *OutlineScreen) renderAssessment() string {
	a := s.ctl.Assessment()
	if !a.OnResults() {
		return theme.Hint.Render(fmt.Sprintf("Final assessment: %d questions, not completed", a.QuestionCount()))
	}
	score := a.Score()
	verdict := "not passed"
	if score.Passed {
		verdict = "passed"
	}
	return theme.Body.Render(fmt.Sprintf("Final assessment: %d/%d (%d%%), %s",
		score.Correct, score.Total, score.Percent, verdict))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
