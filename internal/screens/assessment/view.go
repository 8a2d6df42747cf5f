package assessment

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/ui/components"
	"github.com/abhisek/cognilevel/internal/ui/layout"
	"github.com/abhisek/cognilevel/internal/ui/theme"
)

// renderQuestion renders the active question with its answer area.
func (s *AssessmentScreen) renderQuestion(width int) string {
	q := s.question
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Kind, q.Difficulty))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", s.session.TurnCount()+1, s.cfg.MaxQuestions))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 76)
	card := theme.Card.Width(cardWidth).Render(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString(layout.Centered(theme.Hint, width, "Select 1-9 or use arrows + Enter"))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cardWidth).Render(s.input.View())))
	}
	b.WriteString("\n\n")

	progress := float64(s.session.TurnCount()) / float64(s.cfg.MaxQuestions)
	bar := components.NewProgressBar("Progress  ", progress, false, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	conf := components.NewProgressBar("Confidence", s.session.Confidence(), true, min(width-8, 50))
	conf.Fill = theme.Primary
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, conf.View()))

	return b.String()
}

// renderFeedback shows how the last answer was classified.
func (s *AssessmentScreen) renderFeedback(width int) string {
	t := s.lastTurn
	a := t.Assessment
	var b strings.Builder
	b.WriteString("\n\n")

	levelStyle := lipgloss.NewStyle().Foreground(theme.LevelColor(a.Level)).Bold(true)
	b.WriteString(layout.Centered(levelStyle, width,
		fmt.Sprintf("Level %d · %s", int(a.Level), a.Level.Name())))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("%d%% confident · answered in %s", int(a.Confidence*100+0.5), t.TimeSpent.Round(time.Second))))
	b.WriteString("\n\n")

	if a.Reasoning != "" {
		text := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(a.Reasoning)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
		b.WriteString("\n\n")
	}
	if len(a.Strengths) > 0 {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width,
			"+ "+strings.Join(a.Strengths, ", ")))
		b.WriteString("\n")
	}
	if len(a.Weaknesses) > 0 {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"- "+strings.Join(a.Weaknesses, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint, width, "Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width,
		"End the assessment now?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		"You will get a report based on the answers so far."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, show my report"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderStatus(width int, msg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\n"+msg)
}

func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", errMsg))
}
