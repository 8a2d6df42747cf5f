// Package home is the start screen: pick a domain to assess.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/router"
	"github.com/abhisek/cognilevel/internal/screens/assessment"
	"github.com/abhisek/cognilevel/internal/screens/history"
	"github.com/abhisek/cognilevel/internal/store"
	"github.com/abhisek/cognilevel/internal/ui/components"
	"github.com/abhisek/cognilevel/internal/ui/layout"
	"github.com/abhisek/cognilevel/internal/ui/theme"
)

const banner = `┌─┐┌─┐┌─┐┌┐┌┬┬  ┌─┐┬  ┬┌─┐┬
│  │ ││ ┬││││││  ├┤ └┐┌┘├┤ │
└─┘└─┘└─┘┘└┘┴┴─┘└─┘ └┘ └─┘┴─┘`

// Catalog lists the domains that can be assessed.
type Catalog interface {
	Domains() []string
	Count(domain string) int
}

// Options carries the dependencies of the home screen.
type Options struct {
	Catalog Catalog
	Engine  *assess.Engine
	Config  assess.Config
	// Events enables the history entry when set.
	Events store.EventRepo
	// LLMConfigured is false when answers are scored heuristically.
	LLMConfigured bool
}

// HomeScreen lists the domains and navigation entries.
type HomeScreen struct {
	menu          components.Menu
	llmConfigured bool
}

var _ router.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	var items []components.MenuItem
	for _, domain := range opts.Catalog.Domains() {
		n := opts.Catalog.Count(domain)
		items = append(items, components.MenuItem{
			Label:    domain,
			Detail:   questionCount(n),
			Disabled: n == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: assessment.New(opts.Engine, domain, opts.Config)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "History",
			Disabled: opts.Events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(opts.Events)}
				}
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	return &HomeScreen{
		menu:          components.NewMenu(items),
		llmConfigured: opts.LLMConfigured,
	}
}

func questionCount(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	parts := []string{title.Render(banner)}
	if layout.IsCompactWidth(width) {
		parts = []string{title.Render("C O G N I L E V E L")}
	}
	parts = append(parts, "", theme.Subtitle.Render("Find your cognitive level in a technology domain"))

	if !h.llmConfigured {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Accent).
			Render("No LLM API key set: answers are scored by a length heuristic"))
	}
	parts = append(parts, "", theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
