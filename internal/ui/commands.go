package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mgrdich/wisdomgo/internal/config"
	"github.com/mgrdich/wisdomgo/internal/engine"
	"github.com/mgrdich/wisdomgo/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

// handleLine is the single entry point for a line of input submitted at the
// command prompt. If a multi-step prompt is in progress (save/load/fen/
// maxdepth/timeout), line answers that prompt; otherwise it is dispatched
// per spec.md §6's command grammar, falling through to move parsing.
func (m *Model) handleLine(line string) tea.Cmd {
	line = strings.TrimSpace(line)

	switch m.awaiting {
	case promptSaveFilename:
		return m.continueSaveFilename(line)
	case promptSaveFormat:
		return m.continueSaveFormat(line)
	case promptLoadFilename:
		return m.continueLoad(line)
	case promptFENString:
		return m.continueFEN(line)
	case promptMaxDepth:
		return m.continueMaxDepth(line)
	case promptTimeout:
		return m.continueTimeout(line)
	}

	if line == "" {
		return nil
	}

	switch strings.ToLower(line) {
	case "moves":
		return m.cmdMoves()
	case "save":
		m.awaiting = promptSaveFilename
		m.appendLog("Save to which file?")
		return nil
	case "load":
		m.awaiting = promptLoadFilename
		m.appendLog("Load from which file?")
		return nil
	case "fen":
		m.awaiting = promptFENString
		m.appendLog("Enter a FEN string:")
		return nil
	case "pause":
		m.paused = true
		m.appendLog("Computer moves paused.")
		return nil
	case "unpause":
		m.paused = false
		m.appendLog("Computer moves resumed.")
		return m.maybeTriggerComputerMove()
	case "maxdepth":
		m.awaiting = promptMaxDepth
		m.appendLog(fmt.Sprintf("Max search depth (currently %d):", m.game.Search.MaxDepth))
		return nil
	case "timeout":
		m.awaiting = promptTimeout
		m.appendLog(fmt.Sprintf("Move timeout in seconds (currently %.0f):", m.game.Search.MoveTimeout.Seconds()))
		return nil
	case "computer_white":
		m.game.SetPlayer(engine.White, game.Computer)
		m.appendLog("White is now played by the computer.")
		return m.maybeTriggerComputerMove()
	case "computer_black":
		m.game.SetPlayer(engine.Black, game.Computer)
		m.appendLog("Black is now played by the computer.")
		return m.maybeTriggerComputerMove()
	case "human_white":
		m.game.SetPlayer(engine.White, game.Human)
		m.appendLog("White is now played by a human.")
		return nil
	case "human_black":
		m.game.SetPlayer(engine.Black, game.Human)
		m.appendLog("Black is now played by a human.")
		return nil
	case "switch":
		return m.cmdSwitch()
	case "help":
		m.appendLog(helpText)
		return nil
	case "quit", "exit":
		m.quitting = true
		return tea.Quit
	}

	return m.cmdMove(line)
}

const helpText = "commands: moves, save, load, fen, pause, unpause, maxdepth, timeout, " +
	"computer_white, computer_black, human_white, human_black, switch, quit/exit; " +
	"anything else is parsed as a move (e2e4, e2xe5, e7e8(Q), e5d6 ep, O-O, O-O-O)"

// cmdMoves prints the legal moves for the side to move.
func (m *Model) cmdMoves() tea.Cmd {
	legal := m.game.LegalMoves()
	strs := make([]string, 0, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		strs = append(strs, legal.At(i).String())
	}
	if len(strs) == 0 {
		m.appendLog("No legal moves.")
	} else {
		m.appendLog(strings.Join(strs, ", "))
	}
	return nil
}

// cmdMove parses line as a move and applies it if legal.
func (m *Model) cmdMove(line string) tea.Cmd {
	move, err := engine.ParseMoveString(line, m.game.Board.ActiveColor)
	if err != nil {
		m.appendLog("Not a command or move: " + err.Error())
		return nil
	}
	if err := m.game.MakeMove(move); err != nil {
		m.appendLog("Illegal move: " + move.String())
		return nil
	}
	m.appendLog(move.String())
	return m.afterMove()
}

// cmdSwitch flips the side to move without altering the position,
// round-tripping through FEN since Board.Hash folds in the side-to-move bit
// and only FromFEN knows how to recompute it.
func (m *Model) cmdSwitch() tea.Cmd {
	flipped, err := engine.FromFEN(m.game.Board.ToFEN(m.game.Board.ActiveColor.Opposite()))
	if err != nil {
		m.appendLog("switch failed: " + err.Error())
		return nil
	}
	m.game.ReplaceBoard(flipped)
	m.appendLog("Turn switched to " + flipped.ActiveColor.String() + ".")
	return m.maybeTriggerComputerMove()
}

// afterMove reports the game status after a move and, if the game
// continues and the side to move is computer-controlled, triggers a search.
func (m *Model) afterMove() tea.Cmd {
	if cmd := m.reportIfOver(); cmd != nil {
		return cmd
	}
	return m.maybeTriggerComputerMove()
}

// reportIfOver logs the outcome and reason if the game has ended. It
// returns nil either way; the return type matches the other handlers so
// callers can compose it uniformly.
func (m *Model) reportIfOver() tea.Cmd {
	status := m.game.Status()
	if status.Outcome == game.Ongoing {
		return nil
	}
	var who string
	switch status.Outcome {
	case game.WhiteWins:
		who = "White wins"
	case game.BlackWins:
		who = "Black wins"
	default:
		who = "Draw"
	}
	var why string
	switch status.Reason {
	case game.Checkmate:
		why = "checkmate"
	case game.Stalemate:
		why = "stalemate"
	case game.ThreefoldRepetition:
		why = "threefold repetition"
	case game.FiftyMoveRule:
		why = "fifty-move rule"
	}
	m.appendLog(fmt.Sprintf("Game over: %s (%s).", who, why))
	return nil
}

// maybeTriggerComputerMove starts an asynchronous search if the game is
// ongoing, unpaused, and the side to move is computer-controlled.
func (m *Model) maybeTriggerComputerMove() tea.Cmd {
	if m.paused || m.thinking {
		return nil
	}
	if m.game.Status().Outcome != game.Ongoing {
		return nil
	}
	if m.game.PlayerToMove() != game.Computer {
		return nil
	}
	m.thinking = true
	return m.triggerComputerMove()
}

// continueSaveFilename consumes the filename answer and asks for a format.
func (m *Model) continueSaveFilename(line string) tea.Cmd {
	if line == "" {
		m.appendLog("Filename cannot be empty; save cancelled.")
		m.awaiting = promptNone
		return nil
	}
	m.pendingSaveAs = line
	m.awaiting = promptSaveFormat
	m.appendLog("Save as 'fen' or 'moves' (wisdom-game) format?")
	return nil
}

// continueSaveFormat writes the file in the requested format.
func (m *Model) continueSaveFormat(line string) tea.Cmd {
	m.awaiting = promptNone
	format := strings.ToLower(strings.TrimSpace(line))

	var content string
	switch format {
	case "fen":
		content = m.game.Board.ToFEN(m.game.Board.ActiveColor) + "\n"
	case "moves", "wisdom", "wisdom-game":
		var sb strings.Builder
		for _, mv := range m.game.MoveHistory() {
			sb.WriteString(mv.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("stop\n")
		content = sb.String()
	default:
		m.appendLog("Unknown format " + strconv.Quote(line) + "; save cancelled.")
		return nil
	}

	if err := os.WriteFile(m.pendingSaveAs, []byte(content), 0644); err != nil {
		m.appendLog("save failed: " + err.Error())
		return nil
	}
	m.appendLog("Saved to " + m.pendingSaveAs + ".")
	return nil
}

// continueLoad reads filename and loads it as either FEN or a wisdom-game
// move list, based on its content.
func (m *Model) continueLoad(filename string) tea.Cmd {
	m.awaiting = promptNone
	data, err := os.ReadFile(filename)
	if err != nil {
		m.appendLog("load failed: " + err.Error())
		return nil
	}
	return m.loadContent(string(data))
}

// continueFEN parses line directly as a FEN string.
func (m *Model) continueFEN(line string) tea.Cmd {
	m.awaiting = promptNone
	board, err := engine.FromFEN(line)
	if err != nil {
		m.appendLog("invalid FEN: " + err.Error())
		return nil
	}
	m.game.ReplaceBoard(board)
	m.appendLog("Position loaded from FEN.")
	return m.maybeTriggerComputerMove()
}

// loadContent dispatches to FEN or wisdom-game move-list parsing depending
// on whether the first line looks like a FEN record (six whitespace-
// separated fields) or an algebraic move.
func (m *Model) loadContent(content string) tea.Cmd {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		m.appendLog("load failed: empty file.")
		return nil
	}

	if len(strings.Fields(lines[0])) == 6 {
		board, err := engine.FromFEN(lines[0])
		if err != nil {
			m.appendLog("invalid FEN in file: " + err.Error())
			return nil
		}
		m.game.ReplaceBoard(board)
		m.appendLog("Position loaded.")
		return m.maybeTriggerComputerMove()
	}

	white, black := m.game.PlayerFor(engine.White), m.game.PlayerFor(engine.Black)
	m.game.ReplaceBoard(engine.DefaultPosition())
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.EqualFold(ln, "stop") {
			break
		}
		move, err := engine.ParseMoveString(ln, m.game.Board.ActiveColor)
		if err != nil {
			m.appendLog("load failed parsing move " + strconv.Quote(ln) + ": " + err.Error())
			return nil
		}
		if err := m.game.MakeMove(move); err != nil {
			m.appendLog("load failed: illegal move " + ln + " in file.")
			return nil
		}
	}
	m.game.SetPlayer(engine.White, white)
	m.game.SetPlayer(engine.Black, black)
	m.appendLog("Game loaded.")
	return m.maybeTriggerComputerMove()
}

// continueMaxDepth parses the answer as the new search depth.
func (m *Model) continueMaxDepth(line string) tea.Cmd {
	m.awaiting = promptNone
	depth, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || depth < 1 {
		m.appendLog("maxdepth must be a positive integer.")
		return nil
	}
	m.game.Search.MaxDepth = depth
	_ = config.SaveSearchConfig(config.SearchConfig{
		MaxDepth:           depth,
		MoveTimeoutSeconds: int(m.game.Search.MoveTimeout.Seconds()),
	})
	m.appendLog(fmt.Sprintf("Max search depth set to %d.", depth))
	return nil
}

// continueTimeout parses the answer as the new move timeout in seconds.
func (m *Model) continueTimeout(line string) tea.Cmd {
	m.awaiting = promptNone
	seconds, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || seconds < 1 {
		m.appendLog("timeout must be a positive integer number of seconds.")
		return nil
	}
	m.game.Search.MoveTimeout = time.Duration(seconds) * time.Second
	_ = config.SaveSearchConfig(config.SearchConfig{
		MaxDepth:           m.game.Search.MaxDepth,
		MoveTimeoutSeconds: seconds,
	})
	m.appendLog(fmt.Sprintf("Move timeout set to %ds.", seconds))
	return nil
}
