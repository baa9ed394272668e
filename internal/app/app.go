package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/welcome"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/speech"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Options carries the services the UI runs on. Generator may be nil
// when no AI provider is configured; practice entries then show a
// placeholder.
type Options struct {
	Generator   content.Generator
	Controller  *attempt.Controller
	History     *attempt.History
	ContextRepo *store.ContextRepo
	Synth       speech.Synthesizer
	Recognizer  *speech.TypedRecognizer
}

// difficultyProvider is implemented by screens that have a current
// practice tier to show in the header.
type difficultyProvider interface {
	Difficulty() string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model: the welcome splash, then home.
// The difficulty tracker is created here so tiers reset every launch.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Generator:   opts.Generator,
		Controller:  opts.Controller,
		History:     opts.History,
		Tracker:     sess.NewDifficultyTracker(),
		ContextRepo: opts.ContextRepo,
		Synth:       opts.Synth,
		Recognizer:  opts.Recognizer,
	}
	splash := welcome.New(func() screen.Screen {
		return home.New(deps)
	})
	return AppModel{
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	difficulty := ""
	if active != nil {
		title = active.Title()
		if dp, ok := active.(difficultyProvider); ok {
			difficulty = dp.Difficulty()
		}
	}

	// The splash has no chrome.
	if title == "" && m.router.Depth() == 1 {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(title, difficulty, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// NewProgram builds the Bubble Tea program. The caller runs it, which
// lets callbacks (like history refresh notifications) be hooked up to
// the program before it starts.
func NewProgram(opts Options) *tea.Program {
	return tea.NewProgram(newAppModel(opts))
}
