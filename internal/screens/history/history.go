// Package history lists completed assessments.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/router"
	"github.com/abhisek/cognilevel/internal/store"
	"github.com/abhisek/cognilevel/internal/ui/layout"
	"github.com/abhisek/cognilevel/internal/ui/theme"
)

// sessionLimit caps the number of sessions listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

type turnsLoadedMsg struct {
	SessionID string
	Turns     []store.TurnEvent
	Err       error
}

// HistoryScreen displays past sessions; Enter expands one into its turns.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	turns     map[string][]store.TurnEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ router.Screen = (*HistoryScreen)(nil)
var _ router.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		turns:     make(map[string][]store.TurnEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), sessionLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Turns"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case turnsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.turns[msg.SessionID] = msg.Turns
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected session, loading its turns on
// first expansion.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	id := s.sessions[s.selected].SessionID
	if _, ok := s.turns[id]; ok || !s.expanded[s.selected] {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		turns, err := repo.SessionTurns(context.Background(), id)
		return turnsLoadedMsg{SessionID: id, Turns: turns, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"\n\nLoading history...")
	}
	if len(s.sessions) == 0 {
		return layout.Centered(theme.Hint, width, "\n\nNo assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		level := cognition.Level(sess.FinalLevel)
		line := fmt.Sprintf("%s%s  %-12s  L%d %-10s  %3.0f%%  %-6s  %d questions",
			prefix, sess.Timestamp.Format("Jan 02, 2006 15:04"), sess.Domain,
			sess.FinalLevel, level.Name(), sess.Confidence*100, sess.QualityTier, sess.QuestionsAsked)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderTurns(sess.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderTurns(sessionID string, width int) string {
	turns, ok := s.turns[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	switch {
	case !ok:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading turns...")) + "\n"
	case len(turns) == 0:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answered questions")) + "\n"
	}

	var b strings.Builder
	for _, t := range turns {
		level := cognition.Level(t.Level)
		line := fmt.Sprintf("    %d. %-16s target L%d  →  L%d  %3.0f%%  (%s)",
			t.Turn, t.QuestionID, t.TargetLevel, t.Level, t.Confidence*100, t.Source)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.LevelColor(level)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
