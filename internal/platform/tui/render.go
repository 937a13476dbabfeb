package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/speedkeys/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(0, 3)

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 4)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// lowTime is the number of seconds from which the clock turns yellow.
const lowTime = 3

// styleFor returns the style of a color, falling back to the default.
func styleFor(c core.Color) lipgloss.Style {
	style, ok := colorStyles[c]
	if !ok {
		return colorStyles[core.ColorDefault]
	}
	return style
}

// place centers content on the screen when its size is known.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderCountdown draws the 3-2-1 screen.
func (m Model) renderCountdown(f core.Frame) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.game.Title()),
		"",
		labelStyle.Render("Get ready"),
		countdownStyle.Render(fmt.Sprintf("%d", f.Countdown)),
	)
	return place(m.width, m.height, content)
}

// renderPlaying draws an active level and its feedback flashes.
func (m Model) renderPlaying(f core.Frame) string {
	header := fmt.Sprintf("%s %d    %s %d",
		labelStyle.Render("Level"), f.Level,
		labelStyle.Render("Score"), f.Score)

	clock := fmt.Sprintf("%2ds", f.Remaining)
	if f.Remaining <= lowTime {
		clock = styleFor(core.ColorYellow).Render(clock)
	}
	timeLine := m.bar.ViewAs(core.ClampF(f.TimeLeft, 0, 1)) + " " + clock

	in := m.input
	in.TextStyle = styleFor(f.Feedback)

	var feedback string
	switch f.Phase {
	case core.PhaseFeedbackCorrect:
		feedback = styleFor(core.ColorGreen).Render("Correct!")
	case core.PhaseFeedbackIncorrect:
		feedback = styleFor(core.ColorRed).Render("Try again")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		wordStyle.Render(f.Target),
		"",
		timeLine,
		"",
		in.View(),
		feedback,
		"",
		helpStyle.Render(m.help.View(m.keys)),
	)
	return place(m.width, m.height, content)
}

// renderGameOver draws the final score with the session best.
func (m Model) renderGameOver(f core.Frame) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d    %s %d\n",
		labelStyle.Render("Score"), f.Score,
		labelStyle.Render("Level"), f.Level)

	if m.recorder.last != nil {
		best := fmt.Sprintf("%s %d", labelStyle.Render("Session best"), m.recorder.best)
		if m.recorder.newBest {
			best += "  " + styleFor(core.ColorGreen).Render("New best!")
		}
		b.WriteString(best)
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n",
			labelStyle.Render("Time played"),
			m.recorder.last.Duration.Round(time.Second))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		styleFor(core.ColorRed).Render("GAME OVER"),
		"",
		fmt.Sprintf("The word was %s", titleStyle.Render(f.Target)),
		"",
		b.String(),
		helpStyle.Render(m.help.View(gameOverHelp{keys: m.keys})),
	)
	return place(m.width, m.height, content)
}
