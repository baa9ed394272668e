package pronunciation

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/attempt"
	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

func (s *PronunciationScreen) View(width, height int) string {
	switch s.session.Phase {
	case sess.PronLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Finding a phrase for you...")

	case sess.PronError:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not fetch a phrase: %s\n\n  Press R to retry.", s.session.Err))

	case sess.PronAnalyzing:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Listening back and scoring your attempt...")

	case sess.PronDone:
		return s.renderDone(width)
	}
	return s.renderSlot(width)
}

func (s *PronunciationScreen) renderSlot(width int) string {
	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Phrase %d of %d", s.session.Slot+1, s.session.BatchSize),
		float64(s.session.Slot)/float64(s.session.BatchSize),
		false,
		min(width-8, 50),
	)
	b.WriteString("  " + progress.View())
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-4, 72))))
	b.WriteString("\n\n")

	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Say this phrase:"))
	b.WriteString("\n\n")
	phrase := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Primary).
		Bold(true).
		Render("“" + s.session.Phrase + "”")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(phrase))
	b.WriteString("\n\n")

	switch s.session.Phase {
	case sess.PronRecording:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("● Recording"))
		b.WriteString("\n\n")
		if s.session.Transcript != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Render(s.session.Transcript))
			b.WriteString("\n")
		}
		b.WriteString("  " + s.input.View())
		b.WriteString("\n")

	case sess.PronReviewed:
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

func (s *PronunciationScreen) renderFeedback(width int) string {
	var b strings.Builder

	fb := s.session.Feedback
	scoreStyle := lipgloss.NewStyle().Bold(true)
	switch {
	case fb.Score >= 75:
		scoreStyle = scoreStyle.Foreground(theme.Success)
	case fb.Score >= 50:
		scoreStyle = scoreStyle.Foreground(theme.Accent)
	default:
		scoreStyle = scoreStyle.Foreground(theme.Error)
	}

	b.WriteString("  " + scoreStyle.Render(fmt.Sprintf("Score: %d/100", fb.Score)))
	b.WriteString("\n\n")

	if s.session.Transcript != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("You said: "+s.session.Transcript))
		b.WriteString("\n\n")
	}

	feedback := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Render(fb.Feedback)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(feedback))
	b.WriteString("\n")

	return b.String()
}

func (s *PronunciationScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	if s.session.Attempts == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No phrases could be scored this time, so this set counts as 0."))
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Average score: %d/100 across %d scored phrases", s.session.AverageScore(), s.session.Attempts)))
		b.WriteString("\n")
		if s.next != s.session.Difficulty {
			var note string
			if s.next == attempt.Hard || (s.next == attempt.Medium && s.session.Difficulty == attempt.Easy) {
				note = fmt.Sprintf("Nice work! Moving up to %s.", s.next)
			} else {
				note = fmt.Sprintf("Next set will be %s.", s.next)
			}
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Accent).
				Render(note))
			b.WriteString("\n")
		}
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
