package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// PlaceholderScreen stands in for a practice module when no AI provider
// is configured.
type PlaceholderScreen struct {
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title.
func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("No AI provider configured.\n\nSet LINGUA_GEMINI_API_KEY (or another provider key)\nand restart to practice this module.")
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
