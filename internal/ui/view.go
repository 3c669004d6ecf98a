package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// View satisfies tea.Model, rendering the board, scrollback log, move
// history (if enabled), and the command prompt.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderer.Render(m.game.Board))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s to move.", m.game.Board.ActiveColor.String()))
	if m.paused {
		b.WriteString(" (computer moves paused)")
	}
	b.WriteString("\n")

	if m.config.ShowMoveHistory {
		b.WriteString(m.renderMoveHistory())
	}

	b.WriteString(m.renderLog())

	if m.thinking {
		b.WriteString(statusStyle.Render("Computer is thinking...") + "\n")
	}

	if m.config.ShowHelpText && m.awaiting == promptNone {
		b.WriteString(helpStyle.Render(helpText) + "\n")
	}

	b.WriteString("> " + m.input.View() + "\n")

	return b.String()
}

// renderMoveHistory renders the played moves, six per line, numbered by
// full move.
func (m Model) renderMoveHistory() string {
	moves := m.game.MoveHistory()
	if len(moves) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		if i+1 < len(moves) {
			b.WriteString(fmt.Sprintf("%d. %s %s  ", moveNum, moves[i].String(), moves[i+1].String()))
		} else {
			b.WriteString(fmt.Sprintf("%d. %s", moveNum, moves[i].String()))
		}
		if (i/2+1)%3 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// renderLog renders the scrollback, styling the most recent line as an
// error if it looks like one.
func (m Model) renderLog() string {
	var b strings.Builder
	for i, line := range m.log {
		last := i == len(m.log)-1
		if last && looksLikeError(line) {
			b.WriteString(errorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func looksLikeError(line string) bool {
	return strings.Contains(line, "failed") || strings.HasPrefix(line, "Illegal") ||
		strings.HasPrefix(line, "Not a command") || strings.HasPrefix(line, "invalid")
}
