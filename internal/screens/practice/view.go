package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/attempt"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	switch s.session.Phase {
	case sess.MCQLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n\n  Generating %s questions...", strings.ToLower(s.session.Module.Title())))

	case sess.MCQError:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not generate questions: %s\n\n  Press R to retry.", s.session.Err))

	case sess.MCQComplete:
		return s.renderComplete(width)
	}
	return s.renderQuestion(width)
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q := s.session.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Progress line.
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.session.Index+1, len(s.session.Questions)),
		float64(s.session.Index)/float64(len(s.session.Questions)),
		false,
		min(width-8, 50),
	)
	b.WriteString("  " + progress.View())
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-4, 72))))
	b.WriteString("\n\n")

	// Passage. Reading shows the text; listening keeps the script
	// hidden unless nothing can play it aloud.
	if s.session.Passage != "" {
		show := s.session.Module == attempt.ModuleReading || !s.synth.Supported()
		if show {
			passage := lipgloss.NewStyle().
				Width(min(width-8, 72)).
				Foreground(theme.Text).
				Render(s.session.Passage)
			b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(passage))
			b.WriteString("\n\n")
		} else {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("Listen to the audio, then answer. Press P to replay."))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View()))

	// Feedback after an answer.
	if s.session.Phase == sess.MCQAnswered {
		b.WriteString("\n")
		if s.session.LastCorrect {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Correct!"))
		} else {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Not quite."))
			if s.session.ShowExplanation && q.Explanation != "" {
				b.WriteString("\n\n")
				explanation := lipgloss.NewStyle().
					Width(min(width-8, 72)).
					Foreground(theme.Text).
					Render(q.Explanation)
				b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(explanation))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (s *PracticeScreen) renderComplete(width int) string {
	total := len(s.session.Questions)
	pct := 0
	if total > 0 {
		pct = s.session.Score * 100 / total
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Set complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("You scored %d out of %d (%d%%)", s.session.Score, total, pct)))
	b.WriteString("\n")

	if s.next != s.session.Difficulty {
		var note string
		switch {
		case s.next == attempt.Hard || (s.next == attempt.Medium && s.session.Difficulty == attempt.Easy):
			note = fmt.Sprintf("Nice work! Moving up to %s.", s.next)
		default:
			note = fmt.Sprintf("Next set will be %s.", s.next)
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(note))
		b.WriteString("\n")
	}

	if s.recorded {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Saved to history. A study suggestion is on its way."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press N for a new set, or Esc to go back."))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
