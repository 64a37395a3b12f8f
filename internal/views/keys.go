// Package views implements the UI modes of the navigation stack.
package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/event"
)

// keyMsg builds the canonical tea.KeyMsg for a key name, used both to
// describe bindings in the help modal and to re-inject the chosen key.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

func bind(name, desc string) event.KeyBinding {
	return event.KeyBinding{Key: keyMsg(name), Desc: desc}
}
