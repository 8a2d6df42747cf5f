// Package assessment is the interactive question-and-answer screen.
package assessment

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/router"
	"github.com/abhisek/cognilevel/internal/screens/report"
	"github.com/abhisek/cognilevel/internal/ui/components"
	"github.com/abhisek/cognilevel/internal/ui/layout"
)

type phase int

const (
	phaseStarting phase = iota
	phaseAnswering
	phaseClassifying
	phaseFeedback
	phaseQuitConfirm
	phaseFinishing
)

// answerCharLimit bounds a typed answer.
const answerCharLimit = 2000

// AssessmentScreen runs one session: it shows the next question, collects
// the answer and shows the classification before moving on.
type AssessmentScreen struct {
	engine *assess.Engine
	domain string
	cfg    assess.Config
	now    func() time.Time

	session  *assess.Session
	question cognition.Question
	phase    phase
	input    components.AnswerInput
	choice   components.MultiChoice
	mcActive bool
	askedAt  time.Time
	lastTurn *assess.Turn
	errMsg   string
}

var _ router.Screen = (*AssessmentScreen)(nil)
var _ router.KeyHintProvider = (*AssessmentScreen)(nil)
var _ router.StatusProvider = (*AssessmentScreen)(nil)

// New creates an assessment of domain run by engine.
func New(engine *assess.Engine, domain string, cfg assess.Config) *AssessmentScreen {
	return &AssessmentScreen{
		engine: engine,
		domain: domain,
		cfg:    cfg,
		now:    time.Now,
		input:  components.NewAnswerInput("Type your answer...", answerCharLimit),
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	engine, domain, cfg := s.engine, s.domain, s.cfg
	return func() tea.Msg {
		sess, err := engine.StartSession(context.Background(), domain, cfg)
		return sessionStartedMsg{Session: sess, Err: err}
	}
}

func (s *AssessmentScreen) Title() string {
	return "Assessment: " + s.domain
}

// Status shows the running level estimate and confidence.
func (s *AssessmentScreen) Status() string {
	if s.session == nil {
		return ""
	}
	return fmt.Sprintf("Level ~%.1f  ·  %d%%  ", s.session.Estimate(), int(s.session.Confidence()*100+0.5))
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End assessment"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case phaseAnswering:
		if s.mcActive {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Choose"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "End"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End"},
		}
	}
	return nil
}

func (s *AssessmentScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.session = msg.Session
		return s.advance()

	case turnAppliedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.lastTurn = &msg.Turn
		s.phase = phaseFeedback
		return s, nil

	case sessionFinalizedMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: report.New(msg.Report)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.PopCmd
	}

	switch s.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.phase = phaseAnswering
		}
		return s, nil

	case phaseFeedback:
		if s.engine.IsComplete(s.session) {
			return s.finish()
		}
		return s.advance()

	case phaseAnswering:
		switch key {
		case "esc":
			s.phase = phaseQuitConfirm
			return s, nil
		case "enter":
			if !s.mcActive {
				return s.submit(s.input.Value())
			}
		}
		if s.mcActive {
			s.choice, _ = s.choice.Update(msg)
			if s.choice.Submitted {
				return s.submit(s.choice.Chosen())
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// advance moves to the next question, or finishes once none is left.
func (s *AssessmentScreen) advance() (router.Screen, tea.Cmd) {
	q, ok := s.engine.NextQuestion(s.session)
	if !ok {
		return s.finish()
	}

	s.question = q
	s.phase = phaseAnswering
	s.askedAt = s.now()
	s.mcActive = q.Kind == cognition.KindMultipleChoice && len(q.Options) > 0
	if s.mcActive {
		s.choice = components.NewMultiChoice(q.Options)
		return s, nil
	}
	s.input = components.NewAnswerInput("Type your answer...", answerCharLimit)
	return s, s.input.Init()
}

func (s *AssessmentScreen) submit(answer string) (router.Screen, tea.Cmd) {
	if answer == "" {
		return s, nil
	}
	s.phase = phaseClassifying

	engine, sess := s.engine, s.session
	spent := s.now().Sub(s.askedAt)
	return s, func() tea.Msg {
		turn, err := engine.SubmitResponse(context.Background(), sess, answer, spent)
		return turnAppliedMsg{Turn: turn, Err: err}
	}
}

func (s *AssessmentScreen) finish() (router.Screen, tea.Cmd) {
	s.phase = phaseFinishing
	engine, sess := s.engine, s.session
	return s, func() tea.Msg {
		return sessionFinalizedMsg{Report: engine.Finalize(context.Background(), sess)}
	}
}

func (s *AssessmentScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.session == nil:
		return renderStatus(width, "Preparing your assessment...")
	}

	switch s.phase {
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	case phaseClassifying:
		return renderStatus(width, "Classifying your answer...")
	case phaseFinishing:
		return renderStatus(width, "Building your report...")
	case phaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}
