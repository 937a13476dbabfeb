package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/speedkeys/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapGameKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		gameOver bool
		action   core.Action
		quit     bool
	}{
		{"enter submits", tea.KeyMsg{Type: tea.KeyEnter}, false, core.ActionSubmit, false},
		{"esc leaves", tea.KeyMsg{Type: tea.KeyEsc}, false, core.ActionBack, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, core.ActionQuit, true},
		{"letters are typing", runes("r"), false, core.ActionNone, false},
		{"q is typing", runes("q"), false, core.ActionNone, false},
		{"r replays", runes("r"), true, core.ActionRestart, false},
		{"enter replays", tea.KeyMsg{Type: tea.KeyEnter}, true, core.ActionRestart, false},
		{"b goes back", runes("b"), true, core.ActionBack, false},
		{"q goes back", runes("q"), true, core.ActionBack, false},
		{"other letters ignored", runes("x"), true, core.ActionNone, false},
		{"ctrl+c quits at game over", tea.KeyMsg{Type: tea.KeyCtrlC}, true, core.ActionQuit, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapGameKey(tc.msg, tc.gameOver)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapGameKey() = (%v, %v), expected (%v, %v)", action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("?"), MenuActionInfo},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.action)
		}
	}
}
