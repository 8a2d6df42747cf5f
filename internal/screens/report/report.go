// Package report renders a finished assessment.
package report

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/router"
	"github.com/abhisek/cognilevel/internal/ui/components"
	"github.com/abhisek/cognilevel/internal/ui/layout"
	"github.com/abhisek/cognilevel/internal/ui/theme"
)

// ReportScreen displays the final report of a session.
type ReportScreen struct {
	report assess.FinalReport
}

var _ router.Screen = (*ReportScreen)(nil)
var _ router.KeyHintProvider = (*ReportScreen)(nil)

// New creates a new ReportScreen.
func New(r assess.FinalReport) *ReportScreen {
	return &ReportScreen{report: r}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Assessment Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.PopCmd
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	return Render(s.report, width)
}

// Render lays out r for a terminal of the given width.
func Render(r assess.FinalReport, width int) string {
	var b strings.Builder
	text := lipgloss.NewStyle().Foreground(theme.Text)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	section := func(name string) {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(name)))
		b.WriteString("\n")
		b.WriteString(layout.Divider(width))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width,
		fmt.Sprintf("Assessment complete: %s", r.Domain)))
	b.WriteString("\n\n")

	levelStyle := lipgloss.NewStyle().Foreground(theme.LevelColor(r.FinalLevel)).Bold(true)
	b.WriteString(layout.Centered(levelStyle, width,
		fmt.Sprintf("Level %d · %s", int(r.FinalLevel), r.FinalLevel.Name())))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Confidence", r.OverallConfidence, true, min(width-8, 50))
	bar.Fill = qualityColor(r.QualityTier)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d        Quality: %s        Stopped: %s",
		r.QuestionsAsked, r.QualityTier, stopDescription(r.StopReason))
	b.WriteString(layout.Centered(text, width, stats))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint, width, targetLine(r)))
	b.WriteString("\n")

	section("Recommendations")
	for _, rec := range r.Recommendations {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text.Render("• "+rec)))
		b.WriteString("\n")
	}

	if len(r.AggregatedStrengths) > 0 || len(r.AggregatedWeaknesses) > 0 {
		section("Strengths and weaknesses")
		if len(r.AggregatedStrengths) > 0 {
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width,
				"+ "+strings.Join(r.AggregatedStrengths, ", ")))
			b.WriteString("\n")
		}
		if len(r.AggregatedWeaknesses) > 0 {
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
				"- "+strings.Join(r.AggregatedWeaknesses, ", ")))
			b.WriteString("\n")
		}
	}

	if len(r.LearningModules) > 0 {
		section(fmt.Sprintf("Next: Level %d · %s", int(r.NextLevel), r.NextLevel.Name()))
		for _, m := range r.LearningModules {
			line := fmt.Sprintf("%-32s %3dh", m.Title, m.EstimatedHours)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func qualityColor(q assess.QualityTier) color.Color {
	switch q {
	case assess.QualityHigh:
		return theme.Success
	case assess.QualityMedium:
		return theme.Accent
	default:
		return theme.Error
	}
}

func targetLine(r assess.FinalReport) string {
	state := "not reached"
	if r.TargetReached {
		state = "reached"
	}
	return fmt.Sprintf("Confidence target %d%%: %s", int(r.ConfidenceTarget*100+0.5), state)
}

func stopDescription(r assess.StopReason) string {
	switch r {
	case assess.StopMaxQuestions:
		return "question limit"
	case assess.StopConfidence:
		return "confident result"
	case assess.StopExhausted:
		return "no questions left"
	case assess.StopFinalized:
		return "ended early"
	default:
		return string(r)
	}
}
