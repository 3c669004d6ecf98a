package ui

import (
	"context"

	"github.com/mgrdich/wisdomgo/internal/engine"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// computerMoveResultMsg is delivered by triggerComputerMove's tea.Cmd once
// the search (running on its own goroutine) finishes.
type computerMoveResultMsg struct {
	move engine.Move
	err  error
}

// Init satisfies tea.Model, starting the command line's cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update satisfies tea.Model, dispatching key presses to the command line
// and the asynchronous computer-move result to the game.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case computerMoveResultMsg:
		m.thinking = false
		if msg.err != nil {
			m.appendLog("Computer move failed: " + msg.err.Error())
			return m, nil
		}
		m.appendLog(msg.move.String() + " (computer)")
		cmd := m.afterMove()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes a single keypress. While a computer search is in
// flight, only Ctrl+C is honored, so the model never mutates m.game
// concurrently with the search goroutine triggerComputerMove started.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.thinking {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		line := m.input.Value()
		m.input.SetValue("")
		cmd := m.handleLine(line)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// triggerComputerMove returns a tea.Cmd that runs the search on its own
// goroutine and reports the outcome as a computerMoveResultMsg.
func (m Model) triggerComputerMove() tea.Cmd {
	g := m.game
	return func() tea.Msg {
		move, err := g.ComputerMove(context.Background())
		return computerMoveResultMsg{move: move, err: err}
	}
}
