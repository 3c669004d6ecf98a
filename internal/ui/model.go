package ui

import (
	"github.com/mgrdich/wisdomgo/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
)

// prompt distinguishes the multi-step command flows (save/load/fen/
// maxdepth/timeout) from ordinary command-line input. When a prompt is
// active, the next line typed answers the prompt instead of being parsed
// as a command or move.
type prompt int

const (
	// promptNone means the input line is parsed per spec.md §6's grammar.
	promptNone prompt = iota
	// promptSaveFilename is "save"'s first step: which file to write.
	promptSaveFilename
	// promptSaveFormat is "save"'s second step: fen or wisdom-game format.
	promptSaveFormat
	// promptLoadFilename is "load"'s step: which file to read.
	promptLoadFilename
	// promptFENString is "fen"'s step: the FEN string to parse.
	promptFENString
	// promptMaxDepth is "maxdepth"'s step: the new search depth.
	promptMaxDepth
	// promptTimeout is "timeout"'s step: the new search timeout in seconds.
	promptTimeout
)

// Model is the Bubbletea application model for the single gameplay screen.
// It wraps one internal/game.Game and a command-line input; the teacher's
// menu/settings/mouse/theme/draw-offer/resume screens were cut along with
// their Model fields, since spec.md §6 names only this one flat command
// grammar.
type Model struct {
	game *game.Game

	renderer *BoardRenderer
	config   Config

	input textinput.Model

	// log is the scrollback of status lines, errors, and played moves,
	// newest last, capped at logLimit.
	log []string

	paused bool

	awaiting      prompt
	pendingSaveAs string // filename collected by promptSaveFilename

	thinking bool // a computer move search is in flight

	termWidth  int
	termHeight int

	quitting bool
}

// logLimit bounds how many scrollback lines Model.log retains.
const logLimit = 200

// NewModel creates and initializes a new Model for a human-vs-human game
// using the given display configuration and search bounds. The console
// host can change either player to Computer afterward via the
// computer_{white,black}/human_{white,black} commands.
func NewModel(cfg Config, search game.SearchConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "move or command (try: moves, help)"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	g := game.New(game.Human, game.Human, search)

	return Model{
		game:     g,
		renderer: NewBoardRenderer(cfg),
		config:   cfg,
		input:    ti,
		log:      []string{"New game. Type a move (e2e4) or a command (moves, help)."},
	}
}

// appendLog adds line to the scrollback, trimming the oldest entries once
// logLimit is exceeded.
func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logLimit {
		m.log = m.log[len(m.log)-logLimit:]
	}
}
