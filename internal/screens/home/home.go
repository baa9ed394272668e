package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/screens/learncontext"
	"github.com/abhisek/lingua/internal/screens/placeholder"
	"github.com/abhisek/lingua/internal/screens/practice"
	"github.com/abhisek/lingua/internal/screens/pronunciation"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/speech"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// Deps are the shared services the home screen hands to the screens it
// opens.
type Deps struct {
	Generator   content.Generator
	Controller  *attempt.Controller
	History     *attempt.History
	Tracker     *sess.DifficultyTracker
	ContextRepo *store.ContextRepo
	Synth       speech.Synthesizer
	Recognizer  *speech.TypedRecognizer
}

// HomeScreen is the module picker shown on launch.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Practice entries fall back to a
// placeholder when no generator is configured.
func New(deps Deps) *HomeScreen {
	var items []components.MenuItem

	for _, module := range attempt.Modules {
		module := module
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(module.Title()),
			Action: func() tea.Cmd {
				if deps.Generator == nil {
					return func() tea.Msg {
						return router.PushScreenMsg{Screen: placeholder.New(module.Title())}
					}
				}
				return func() tea.Msg {
					if module == attempt.ModulePronunciation {
						return router.PushScreenMsg{
							Screen: pronunciation.New(deps.Generator, deps.Controller, deps.Tracker, deps.Synth, deps.Recognizer),
						}
					}
					return router.PushScreenMsg{
						Screen: practice.New(module, deps.Generator, deps.Controller, deps.Tracker, deps.ContextRepo, deps.Synth),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "LEARNING CONTEXT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: learncontext.New(deps.ContextRepo)}
			}
		}},
		components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.History)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("What would you like to practice?")
	sections = append(sections, title)

	tagline := theme.Subtitle.Width(width).
		Render("Questions adapt to you. Each set starts at Medium.")
	sections = append(sections, tagline)

	if h.deps.Generator == nil {
		warn := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("No AI provider configured. Set LINGUA_GEMINI_API_KEY (or another provider key) to practice.")
		sections = append(sections, warn)
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
