package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// RefreshMsg asks the screen to re-read history. The app sends it when
// background enrichment patches an attempt, so open suggestion and tip
// placeholders fill in live.
type RefreshMsg struct{}

// clearedMsg is sent after the history has been wiped.
type clearedMsg struct {
	Err error
}

// HistoryScreen lists past practice attempts, newest first, with a
// detail view per attempt.
type HistoryScreen struct {
	history *attempt.History

	attempts []attempt.Attempt
	selected int
	detail   bool
	confirm  bool
	scroll   int
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by the shared in-memory history.
func New(history *attempt.History) *HistoryScreen {
	return &HistoryScreen{history: history}
}

func (s *HistoryScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear everything"},
			{Key: "N", Description: "Keep history"},
		}
	}
	if s.detail {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// reload snapshots the shared history, clamping the cursor when entries
// have disappeared underneath it.
func (s *HistoryScreen) reload() {
	s.attempts = s.history.All()
	if s.selected >= len(s.attempts) {
		s.selected = len(s.attempts) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	if s.detail && len(s.attempts) == 0 {
		s.detail = false
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		s.reload()
		return s, nil

	case clearedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.reload()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			return s, s.clearHistory()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.detail {
		switch key {
		case "esc":
			s.detail = false
			s.scroll = 0
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.attempts)-1 {
			s.selected++
		}
	case "enter":
		if len(s.attempts) > 0 {
			s.detail = true
			s.scroll = 0
		}
	case "c", "C":
		if len(s.attempts) > 0 {
			s.confirm = true
		}
	}
	return s, nil
}

// clearHistory wipes the in-memory list and the persisted copy.
// Enrichment still in flight for a cleared attempt finds no entry to
// patch and drops its result.
func (s *HistoryScreen) clearHistory() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{Err: s.history.Clear(context.Background())}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.confirm {
		return renderClearConfirm(width)
	}
	if s.detail {
		return s.renderDetail(width, height)
	}
	return s.renderList(width)
}

func (s *HistoryScreen) renderList(width int) string {
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Pick a module and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		var scoreStr string
		if a.Module == attempt.ModulePronunciation {
			scoreStr = fmt.Sprintf("avg %d/100", a.Score)
		} else {
			scoreStr = fmt.Sprintf("%d/%d", a.Score, a.TotalItems)
		}

		line := fmt.Sprintf("%s%-14s  %s  %-9s  %-6s  %3d%%",
			prefix,
			a.Module.Title(),
			a.Date.Local().Format("Jan 02 15:04"),
			scoreStr,
			a.Difficulty,
			a.Percentage,
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *HistoryScreen) renderDetail(width, height int) string {
	if s.selected >= len(s.attempts) {
		return ""
	}
	a := s.attempts[s.selected]
	contentWidth := min(width-8, 72)

	var lines []string
	add := func(str string) {
		lines = append(lines, strings.Split(str, "\n")...)
	}

	titleStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	add(titleStyle.Render(a.Module.Title()) + dimStyle.Render("  "+a.Date.Local().Format("Jan 02, 2006 15:04")))

	var scoreStr string
	if a.Module == attempt.ModulePronunciation {
		scoreStr = fmt.Sprintf("Average score %d/100 over %d phrases", a.Score, a.TotalItems)
	} else {
		scoreStr = fmt.Sprintf("Score %d/%d (%d%%)", a.Score, a.TotalItems, a.Percentage)
	}
	add(lipgloss.NewStyle().Foreground(theme.Text).Render(scoreStr) +
		dimStyle.Render(fmt.Sprintf("  ·  %s", a.Difficulty)))
	add("")

	add(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Suggestion"))
	suggestionStyle := lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text)
	if a.Suggestion == attempt.SuggestionPending {
		suggestionStyle = suggestionStyle.Foreground(theme.TextDim).Italic(true)
	}
	add(suggestionStyle.Render(a.Suggestion))

	if len(a.DetailedFeedback) > 0 {
		add("")
		add(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Missed questions (%d)", len(a.DetailedFeedback))))
		for _, d := range a.DetailedFeedback {
			add("")
			add(lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text).Bold(true).Render(d.QuestionText))
			add(lipgloss.NewStyle().Foreground(theme.Error).Render("  Your answer: " + d.UserAnswer))
			add(lipgloss.NewStyle().Foreground(theme.Success).Render("  Correct: " + d.CorrectAnswer))
			if d.Explanation != "" {
				add(lipgloss.NewStyle().Width(contentWidth).Foreground(theme.TextDim).Render("  " + d.Explanation))
			}
			if d.AITip != "" {
				tipStyle := lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Accent)
				if d.AITip == attempt.TipPending {
					tipStyle = tipStyle.Foreground(theme.TextDim).Italic(true)
				}
				add(tipStyle.Render("  Tip: " + d.AITip))
			}
		}
	}

	// Clamp scroll to keep at least one line visible.
	maxScroll := len(lines) - 1
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	visible := lines[s.scroll:]
	if height > 2 && len(visible) > height-2 {
		visible = visible[:height-2]
	}

	body := strings.Join(visible, "\n")
	return "\n" + lipgloss.NewStyle().PaddingLeft(4).Render(body)
}

func renderClearConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render("Clear all practice history?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Error).
		Render("[Y] Yes, clear everything"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).
		Render("[N] No, keep it"))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
