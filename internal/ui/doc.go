// Package ui provides the terminal user interface for TermChess.
//
// This is a single Bubbletea screen implementing the flat command grammar
// of a console chess host: a board view plus a command line that accepts
// "moves", "save", "load"/"fen", "pause"/"unpause", "maxdepth"/"timeout",
// "computer_{white,black}"/"human_{white,black}", "switch", "quit"/"exit",
// and otherwise parses the input as a move and applies it if legal.
//
// The UI layer is separated from the game logic (internal/game,
// internal/engine) and uses the Bubbletea framework for reactive,
// event-driven updates.
package ui
