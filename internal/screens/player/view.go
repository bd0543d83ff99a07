package player

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/flow"
	"github.com/abhisek/coursewalk/internal/ui/components"
	"github.com/abhisek/coursewalk/internal/ui/layout"
	"github.com/abhisek/coursewalk/internal/ui/theme"
)

const helpText = `→ / l or drag left    next panel or card
← / h or drag right   previous panel or card
↑ ↓ then Enter        choose an answer
Space                 pause or resume narration
1-9                   open a topic from the module grid
?                     close this help`

func (s *PlayerScreen) View(width, height int) string {
	cw := components.CardWidth(width)
	card := s.ctl.Current()

	var body string
	if s.ctl.Mode() == flow.ModeHelp {
		body = s.renderHelp()
	} else {
		switch card.Kind {
		case course.KindIntro:
			body = s.renderScreen(s.ctl.Sequence().Course().Intro, "Press → to begin.")
		case course.KindCover:
			body = s.renderCover(width, cw)
		case course.KindTraining:
			body = s.renderTopic(card)
		case course.KindFinalTest:
			body = s.renderFinalTest()
		case course.KindComplete:
			body = s.renderComplete()
		}
	}

	sections := []string{
		components.Card(body, cw, s.ctl.Locked(), s.ctl.Mode() == flow.ModeHelp),
		"",
		s.renderNav(),
		"",
		components.NewProgressBar(s.progressLabel(), s.metrics.Percent, true, cw).View(),
	}
	if s.ctl.Locked() {
		sections = append(sections, "", theme.Incorrect.Render(s.lockedReason()))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (s *PlayerScreen) renderScreen(sc course.Screen, hint string) string {
	parts := []string{theme.Title.Render(sc.Title)}
	if sc.Body != "" {
		parts = append(parts, "", theme.Body.Render(sc.Body))
	}
	if hint != "" {
		parts = append(parts, "", theme.Hint.Render(hint))
	}
	return strings.Join(parts, "\n")
}

func (s *PlayerScreen) renderCover(width, cw int) string {
	c := s.ctl.Sequence().Course()
	if !s.ctl.GridVisible() {
		return s.renderScreen(c.Cover, fmt.Sprintf("%d topics. Press → to see them.", len(c.Topics)))
	}

	gate := s.ctl.Gate()
	seq := s.ctl.Sequence()
	tiles := make([]components.ModuleTile, 0, seq.TopicCount())
	for i, idx := range seq.TrainingIndices() {
		n := i + 1
		tiles = append(tiles, components.ModuleTile{
			Number:   n,
			Label:    seq.Card(idx).Title,
			Unlocked: gate.ModuleUnlocked(n),
			Viewed:   s.ctl.IsViewed(idx),
		})
	}
	grid := components.ModuleGrid{Tiles: tiles, Compact: layout.IsCompactWidth(width)}
	if !grid.Compact && lipgloss.Width(grid.View()) > cw-6 {
		grid.Compact = true
	}
	return s.renderScreen(c.Cover, "") + "\n\n" + grid.View() + "\n\n" +
		theme.Hint.Render("Press a number to open a topic, or → to start from the first.")
}

func (s *PlayerScreen) renderTopic(card course.Card) string {
	topic, _ := s.ctl.Sequence().TopicAt(s.ctl.Position().CurrentIndex)
	header := theme.Title.Render(card.Title) + "  " +
		theme.Subtitle.Render(fmt.Sprintf("Topic %d of %d", card.TopicIndex+1, s.metrics.TotalTopics))

	var panel string
	switch s.ctl.Mode() {
	case flow.ModeOverview:
		panel = theme.Body.Render(topic.Summary) + "\n\n" + theme.Hint.Render("Press → to read more.")
	case flow.ModeExpanded:
		panel = theme.Body.Render(topic.Body) + "\n\n" + s.renderAudio()
	case flow.ModeChallenge:
		panel = s.renderChallenge(card.Title)
	}
	return header + "\n\n" + panel
}

func (s *PlayerScreen) renderAudio() string {
	a := s.ctl.Audio()
	switch a.Status {
	case flow.AudioPlaying, flow.AudioPaused:
		label := "♪ Playing"
		if a.Status == flow.AudioPaused {
			label = "‖ Paused"
		}
		if s.playback != nil {
			elapsed, total := s.playback.Position()
			label += fmt.Sprintf("  %s / %s", clock(elapsed), clock(total))
		}
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(label)
	case flow.AudioEnded:
		return theme.Correct.Render("✓ Narration complete. Press → for the challenge.")
	}
	if a.Message != "" {
		return theme.Hint.Render(a.Message + " Press → for the challenge.")
	}
	return ""
}

func (s *PlayerScreen) renderChallenge(title string) string {
	out := s.choices.View()
	res, done := s.ctl.Result(title)
	switch {
	case !done:
		out += "\n" + theme.Hint.Render("Choose with ↑ ↓ and press Enter.")
	case res.IsCorrect:
		out += "\n" + theme.Correct.Render("Correct!") + "  " + theme.Hint.Render("Press → to continue.")
	default:
		out += "\n" + theme.Incorrect.Render("Not quite.") + "  " + theme.Hint.Render("The right answer is highlighted. Press → to continue.")
	}
	return out
}

func (s *PlayerScreen) renderFinalTest() string {
	ft := s.ctl.Sequence().Course().FinalTest
	a := s.ctl.Assessment()

	switch {
	case a.OnCover():
		hint := fmt.Sprintf("%d questions. You need %d%% to pass. Press → to start.", a.QuestionCount(), flow.PassPercent)
		return s.renderScreen(course.Screen{Title: ft.Title, Body: ft.Intro}, hint)
	case a.OnResults():
		return s.renderScore(a.Score()) + "\n\n" + theme.Hint.Render("Press → to finish.")
	}

	header := theme.Title.Render(ft.Title) + "  " +
		theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", a.Page(), a.QuestionCount()))
	hint := "Choose with ↑ ↓, press Enter to answer, then →."
	return header + "\n\n" + s.choices.View() + "\n" + theme.Hint.Render(hint)
}

func (s *PlayerScreen) renderScore(sc flow.Score) string {
	line := fmt.Sprintf("%d of %d correct (%d%%)", sc.Correct, sc.Total, sc.Percent)
	if sc.Passed {
		return theme.Correct.Render("Passed!") + "  " + theme.Body.Render(line)
	}
	return theme.Incorrect.Render("Not passed yet.") + "  " + theme.Body.Render(line)
}

func (s *PlayerScreen) renderComplete() string {
	out := s.renderScreen(s.ctl.Sequence().Course().Complete, "")
	if a := s.ctl.Assessment(); a.OnResults() {
		out += "\n\n" + s.renderScore(a.Score())
	}
	return out
}

func (s *PlayerScreen) renderHelp() string {
	return theme.Title.Render("How to use the player") + "\n\n" + theme.Body.Render(helpText)
}

// renderNav draws Back/Next buttons, dimming Next when it would be refused.
func (s *PlayerScreen) renderNav() string {
	back := components.NewButton("◂ Back", s.ctl.Position().CurrentIndex > 0)
	next := components.NewButton("Next ▸", s.nextAllowed())
	return lipgloss.JoinHorizontal(lipgloss.Center, back.View(), "   ", next.View())
}

func (s *PlayerScreen) nextAllowed() bool {
	card := s.ctl.Current()
	gate := s.ctl.Gate()
	switch {
	case card.IsTraining():
		switch s.ctl.Mode() {
		case flow.ModeExpanded:
			return gate.ChallengeUnlocked(card.Title)
		case flow.ModeChallenge:
			return gate.HasSubmission(card.Title) && s.ctl.CanAdvanceFromCurrent()
		}
	case card.Kind == course.KindFinalTest:
		a := s.ctl.Assessment()
		if q, ok := a.Question(); ok {
			_, answered := a.Selected(q.ID)
			return answered
		}
	case card.Kind == course.KindComplete:
		return false
	}
	return true
}

func (s *PlayerScreen) lockedReason() string {
	card := s.ctl.Current()
	switch {
	case card.Kind == course.KindCover:
		return "That topic is locked. Finish the earlier topics first."
	case card.Kind == course.KindFinalTest:
		return "Answer the question before moving on."
	case s.ctl.Mode() == flow.ModeExpanded:
		return "Listen to the narration to unlock the challenge."
	case s.ctl.Mode() == flow.ModeChallenge:
		if !s.ctl.Gate().HasSubmission(card.Title) {
			return "Answer the challenge to continue."
		}
		return "Take a moment with this topic before moving on."
	}
	return "Not yet."
}

func (s *PlayerScreen) progressLabel() string {
	m := s.metrics
	return fmt.Sprintf("Topics %d/%d", m.TopicsViewed, m.TotalTopics)
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
