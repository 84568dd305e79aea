// ABOUTME: Bubbletea model for the reader TUI
// ABOUTME: Defines application state, key handling, and rendering
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// URL entry
	input string

	// Pipeline
	stage   string
	summary string
	errMsg  string
	busy    bool

	// Playback
	playing bool

	// Dimensions
	width  int
	height int

	control *Control
}

// StatusMsg updates TUI state from the pipeline loop
type StatusMsg struct {
	Stage   string
	Summary string
	Err     string
	Playing *bool
	Busy    *bool
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.control.quit()
		return m, tea.Quit
	case "enter":
		if m.input != "" && !m.busy {
			m.busy = true
			m.errMsg = ""
			m.control.read(m.input)
		}
	case " ":
		m.control.toggle()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes && !m.busy {
			for _, r := range msg.Runes {
				if r > ' ' {
					m.input += string(r)
				}
			}
		}
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Stage != "" {
		m.stage = msg.Stage
	}
	if msg.Summary != "" {
		m.summary = msg.Summary
	}
	if msg.Err != "" {
		m.errMsg = msg.Err
	}
	if msg.Playing != nil {
		m.playing = *msg.Playing
	}
	if msg.Busy != nil {
		m.busy = *msg.Busy
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderPipeline()
	s += m.renderSummary()
	s += m.renderHelp()

	return s
}

// renderHeader renders the title and URL entry line
func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ News Reader ────────────────────────────────────────┐
│ URL: %-47s │
├──────────────────────────────────────────────────────┤
`, truncate(m.input+"█", 47))
}

// renderPipeline renders the pipeline and playback status
func (m Model) renderPipeline() string {
	status := "Ready"
	switch {
	case m.errMsg != "":
		status = "Error: " + m.errMsg
	case m.stage == "summarizing":
		status = "Summarizing article..."
	case m.stage == "synthesizing":
		status = "Synthesizing speech..."
	case m.playing:
		status = "▶ Playing"
	case m.summary != "":
		status = "■ Stopped"
	}

	return fmt.Sprintf("│ Status: %-44s │\n", truncate(status, 44))
}

// renderSummary renders the summary text, wrapped to the box
func (m Model) renderSummary() string {
	if m.summary == "" {
		return "│ No summary yet                                       │\n"
	}

	s := "│                                                      │\n"
	for _, line := range wrap(m.summary, 52) {
		s += fmt.Sprintf("│ %-52s │\n", line)
	}
	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ enter:Read  space:Play/Stop  esc:Quit                │
└──────────────────────────────────────────────────────┘
`
}

// Utility functions
func truncate(s string, length int) string {
	// Slice on runes; byte indexing could cut a multibyte character
	// (the cursor block, or non-ASCII URL characters) in half.
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func wrap(s string, width int) []string {
	words := strings.Fields(s)
	var lines []string
	line := ""
	for _, w := range words {
		if line != "" && len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		if line == "" {
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	// Keep the box a manageable height
	if len(lines) > 12 {
		lines = append(lines[:11], "...")
	}
	return lines
}
