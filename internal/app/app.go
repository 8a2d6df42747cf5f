// Package app hosts the terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/router"
	"github.com/abhisek/cognilevel/internal/screens/assessment"
	"github.com/abhisek/cognilevel/internal/screens/home"
	"github.com/abhisek/cognilevel/internal/store"
	"github.com/abhisek/cognilevel/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Catalog home.Catalog
	Engine  *assess.Engine
	Config  assess.Config
	Events  store.EventRepo

	// Domain starts an assessment right away instead of showing the
	// domain picker.
	Domain        string
	LLMConfigured bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Options{
		Catalog:       opts.Catalog,
		Engine:        opts.Engine,
		Config:        opts.Config,
		Events:        opts.Events,
		LLMConfigured: opts.LLMConfigured,
	})
	m := AppModel{router: router.New(homeScreen)}
	if opts.Domain != "" {
		m.init = m.router.Push(assessment.New(opts.Engine, opts.Domain, opts.Config))
	} else {
		m.init = homeScreen.Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render lays out header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(router.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(router.KeyHintProvider); ok {
		if h := kp.KeyHints(); h != nil {
			hints = append(h, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
