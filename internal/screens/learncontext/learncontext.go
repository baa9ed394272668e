package learncontext

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// loadedMsg carries the stored learning context.
type loadedMsg struct {
	Text string
	Err  error
}

// savedMsg is sent once the context has been written.
type savedMsg struct {
	Err error
}

// ContextScreen edits the learning context: free text about the
// learner's interests or study goals that steers generated questions,
// passages, and phrases.
type ContextScreen struct {
	repo *store.ContextRepo

	area   textarea.Model
	errMsg string
}

var _ screen.Screen = (*ContextScreen)(nil)
var _ screen.KeyHintProvider = (*ContextScreen)(nil)

// New creates a ContextScreen backed by the given repository.
func New(repo *store.ContextRepo) *ContextScreen {
	area := textarea.New()
	area.Placeholder = "e.g. I work in marketing and want to practice business English..."
	area.CharLimit = 2000
	area.SetHeight(8)
	return &ContextScreen{repo: repo, area: area}
}

func (s *ContextScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.area.Focus())
}

func (s *ContextScreen) Title() string {
	return "Learning Context"
}

func (s *ContextScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Discard"},
	}
}

func (s *ContextScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.area.SetValue(msg.Text)
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "ctrl+s":
			return s, s.save()
		}
	}

	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return s, cmd
}

func (s *ContextScreen) load() tea.Cmd {
	return func() tea.Msg {
		text, err := s.repo.Load(context.Background())
		return loadedMsg{Text: text, Err: err}
	}
}

func (s *ContextScreen) save() tea.Cmd {
	text := strings.TrimSpace(s.area.Value())
	return func() tea.Msg {
		return savedMsg{Err: s.repo.Save(context.Background(), text)}
	}
}

func (s *ContextScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}

	var b strings.Builder
	b.WriteString("\n")
	intro := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.TextDim).
		Render("Tell Lingua what to build your practice around. Topics, vocabulary you want to see, or situations you're preparing for all help. Leave it empty for general practice.")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(intro))
	b.WriteString("\n\n")

	s.area.SetWidth(min(width-8, 72))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(s.area.View()))
	b.WriteString("\n")

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
