package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/speedkeys/internal/core"
)

// GameKeyMap defines the keys of the game screen. Letters are never bound
// while the input field is focused; they belong to the typed word.
type GameKeyMap struct {
	Submit key.Binding
	Abort  key.Binding
	Quit   key.Binding
	Replay key.Binding
	Menu   key.Binding
}

// DefaultGameKeyMap returns the default game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "play again"),
		),
		Menu: key.NewBinding(
			key.WithKeys("b", "esc", "q"),
			key.WithHelp("b/esc", "menu"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Abort, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Abort, k.Quit},
		{k.Replay, k.Menu},
	}
}

// gameOverHelp is the help shown on the game over screen.
type gameOverHelp struct {
	keys GameKeyMap
}

func (h gameOverHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Replay, h.keys.Menu, h.keys.Quit}
}

func (h gameOverHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	game GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: DefaultGameKeyMap()}
}

// MapGameKey translates a key pressed on the game screen. While playing,
// only control keys map to actions; at game over single letters do too.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapGameKey(msg tea.KeyMsg, gameOver bool) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.game.Quit) {
		return core.ActionQuit, true
	}

	if gameOver {
		switch {
		case key.Matches(msg, km.game.Replay):
			return core.ActionRestart, false
		case key.Matches(msg, km.game.Menu):
			return core.ActionBack, false
		}
		return core.ActionNone, false
	}

	switch {
	case key.Matches(msg, km.game.Submit):
		return core.ActionSubmit, false
	case key.Matches(msg, km.game.Abort):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionInfo
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "?", "i":
		return MenuActionInfo
	}

	return MenuActionNone
}
