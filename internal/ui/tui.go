// ABOUTME: TUI program lifecycle and pipeline control channels
// ABOUTME: Bridges bubbletea key events to the application loop
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries user intents from the TUI to the pipeline loop.
// Channels are buffered so key handling never blocks on a slow pipeline.
type Control struct {
	Reads   chan string
	Toggles chan struct{}
	Quits   chan struct{}
}

// NewControl creates pipeline control channels
func NewControl() *Control {
	return &Control{
		Reads:   make(chan string, 1),
		Toggles: make(chan struct{}, 1),
		Quits:   make(chan struct{}, 1),
	}
}

func (c *Control) read(url string) {
	select {
	case c.Reads <- url:
	default:
	}
}

func (c *Control) toggle() {
	select {
	case c.Toggles <- struct{}{}:
	default:
	}
}

func (c *Control) quit() {
	select {
	case c.Quits <- struct{}{}:
	default:
	}
}

// Run creates the TUI program. The caller starts it with program.Run().
func Run(control *Control) (*tea.Program, error) {
	model := Model{control: control}
	program := tea.NewProgram(model, tea.WithAltScreen())
	return program, nil
}
