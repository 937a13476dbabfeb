// Package tui provides the Bubble Tea front end for SpeedKeys.
// It drives the game loop from a tick, maps keys and renders frames.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/speedkeys/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends the next tick, aligned to the
// system clock so the tick rate does not drift with render time.
func tickCmd(tickRate int) tea.Cmd {
	interval := core.RuntimeConfig{TickRate: tickRate}.TickInterval()
	return tea.Every(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
