package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursewalk/internal/router"
	"github.com/abhisek/coursewalk/internal/screen"
	"github.com/abhisek/coursewalk/internal/screens/welcome"
	"github.com/abhisek/coursewalk/internal/ui/layout"
)

// Options configures the terminal application.
type Options struct {
	CourseTitle string

	// Player is the main screen. It is shown after the splash screen.
	Player screen.Screen

	// SkipSplash opens the player directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router      *router.Router
	courseTitle string
	width       int
	height      int
}

// newAppModel creates the root model with the splash or player screen.
func newAppModel(opts Options) AppModel {
	initial := opts.Player
	if !opts.SkipSplash {
		initial = welcome.New(opts.CourseTitle, func() screen.Screen { return opts.Player })
	}
	return AppModel{
		router:      router.New(initial),
		courseTitle: opts.CourseTitle,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	active := m.router.Active()
	if mp, ok := active.(screen.MouseModeProvider); ok && mp.WantsMouse() {
		v.MouseMode = tea.MouseModeCellMotion
	}

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(m.courseTitle, title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Q", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
