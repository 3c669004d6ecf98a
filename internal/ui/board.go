package ui

import (
	"fmt"
	"strings"

	"github.com/mgrdich/wisdomgo/internal/engine"
	"github.com/charmbracelet/lipgloss"
)

// BoardRenderer is responsible for rendering the chess board to the terminal.
// It uses the Config to determine how to display pieces and coordinates.
type BoardRenderer struct {
	config Config
}

// NewBoardRenderer creates a new BoardRenderer with the given configuration.
func NewBoardRenderer(config Config) *BoardRenderer {
	return &BoardRenderer{
		config: config,
	}
}

// Render renders the chess board as a string, from White's perspective
// (rank 8 at top, rank 1 at bottom). engine.Coord's row 0 is rank 8, so the
// top-to-bottom render order is simply ascending row.
func (r *BoardRenderer) Render(b *engine.Board) string {
	if b == nil {
		return "No board available"
	}

	var result strings.Builder

	for row := 0; row <= 7; row++ {
		if r.config.ShowCoords {
			result.WriteString(fmt.Sprintf("%d ", 8-row))
		}

		for col := 0; col < 8; col++ {
			sq := engine.MakeCoord(row, col)
			piece := b.PieceAt(sq)
			symbol := r.pieceSymbol(piece)

			if col > 0 {
				result.WriteString(" ")
			}
			result.WriteString(symbol)
		}

		result.WriteString("\n")
	}

	if r.config.ShowCoords {
		result.WriteString("  ")
		result.WriteString("a b c d e f g h")
	}

	return result.String()
}

// pieceSymbol returns the symbol to use for the given piece.
func (r *BoardRenderer) pieceSymbol(p engine.ColoredPiece) string {
	if p.IsEmpty() {
		return "."
	}

	var symbol string
	if r.config.UseUnicode {
		symbol = r.unicodeSymbol(p)
	} else {
		symbol = r.asciiSymbol(p)
	}

	if r.config.UseColors {
		return r.colorSymbol(symbol, p)
	}
	return symbol
}

// asciiSymbol returns the ASCII character for the given piece.
// White pieces are uppercase (P, N, B, R, Q, K), Black pieces lowercase.
func (r *BoardRenderer) asciiSymbol(p engine.ColoredPiece) string {
	var ch byte
	switch p.Type() {
	case engine.Pawn:
		ch = 'P'
	case engine.Knight:
		ch = 'N'
	case engine.Bishop:
		ch = 'B'
	case engine.Rook:
		ch = 'R'
	case engine.Queen:
		ch = 'Q'
	case engine.King:
		ch = 'K'
	default:
		return "."
	}

	if p.Color() == engine.Black {
		ch = ch - 'A' + 'a'
	}
	return string(ch)
}

var unicodePieces = map[engine.PieceType][2]rune{
	engine.Pawn:   {'♙', '♟'},
	engine.Knight: {'♘', '♞'},
	engine.Bishop: {'♗', '♝'},
	engine.Rook:   {'♖', '♜'},
	engine.Queen:  {'♕', '♛'},
	engine.King:   {'♔', '♚'},
}

// unicodeSymbol returns the Unicode chess glyph for the given piece.
func (r *BoardRenderer) unicodeSymbol(p engine.ColoredPiece) string {
	glyphs, ok := unicodePieces[p.Type()]
	if !ok {
		return "."
	}
	if p.Color() == engine.Black {
		return string(glyphs[1])
	}
	return string(glyphs[0])
}

// colorSymbol applies color styling to a piece symbol using lipgloss.
// White pieces are rendered in bright/white color; Black pieces in dim gray.
func (r *BoardRenderer) colorSymbol(symbol string, p engine.ColoredPiece) string {
	if p.Color() == engine.White {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
		return style.Render(symbol)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	return style.Render(symbol)
}
