package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/session"
)

// infoLevels is how far the budget table looks ahead.
const infoLevels = 50

// InfoKeyMap defines the key bindings for the how-to-play screen.
type InfoKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k InfoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k InfoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// InfoModel explains the rules and shows the time budget of every mode.
type InfoModel struct {
	modes     []registry.GameInfo
	feedback  config.Feedback
	keys      InfoKeyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewInfoModel creates the how-to-play screen.
// Rules are taken from fresh instances so the configured rules show up.
func NewInfoModel(cfg config.Config, width, height int) InfoModel {
	modes := registry.List()
	for i, mode := range modes {
		if g, err := registry.Create(mode.ID, registry.Deps{Config: cfg}); err == nil {
			modes[i].Rules = g.Rules()
		}
	}

	return InfoModel{
		modes:    modes,
		feedback: cfg.Feedback,
		keys: InfoKeyMap{
			Back: key.NewBinding(
				key.WithKeys("esc", "b", "enter"),
				key.WithHelp("esc/b", "back"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m InfoModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m InfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the rules and budget tables.
func (m InfoModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("HOW TO PLAY"))
	b.WriteString("\n\n")
	b.WriteString("A word appears on screen. Type it exactly and press Enter\n")
	b.WriteString("before the clock runs out. Every correct word is a point and\n")
	b.WriteString("the next level. A wrong word flashes red and the clock keeps\n")
	b.WriteString("running. If time runs out, the run is over.\n")
	fmt.Fprintf(&b, "\nFeedback stays on screen for %s.\n", m.feedback.Delay)

	boxes := make([]string, 0, len(m.modes))
	for _, mode := range m.modes {
		boxes = append(boxes, renderBudget(mode))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		"",
		helpStyle.Render(m.help.View(m.keys)),
	)
	return place(m.width, m.height, content)
}

// renderBudget draws the seconds per level bracket for one mode.
func renderBudget(mode registry.GameInfo) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(mode.Title))
	b.WriteString("\n")

	for _, br := range session.Brackets(mode.Rules, infoLevels) {
		levels := fmt.Sprintf("%d-%d", br.FirstLevel, br.LastLevel)
		if br.LastLevel == 0 {
			levels = fmt.Sprintf("%d+", br.FirstLevel)
		} else if br.FirstLevel == br.LastLevel {
			levels = fmt.Sprintf("%d", br.FirstLevel)
		}
		fmt.Fprintf(&b, "%s %-7s %2ds\n", labelStyle.Render("levels"), levels, br.Seconds)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		MarginRight(1).
		Render(strings.TrimRight(b.String(), "\n"))
}

// RunInfo runs the how-to-play screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunInfo(cfg config.Config, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewInfoModel(cfg, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(InfoModel)
	if !ok {
		return false, nil
	}
	return m.goingBack, nil
}
