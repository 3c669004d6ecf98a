package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgrdich/wisdomgo/internal/engine"
)

// TestSaveGamePath tests that SaveGamePath returns a valid path
func TestSaveGamePath(t *testing.T) {
	path, err := SaveGamePath()
	if err != nil {
		t.Fatalf("SaveGamePath returned error: %v", err)
	}

	if path == "" {
		t.Fatal("SaveGamePath returned empty string")
	}

	if !strings.Contains(path, ".termchess") {
		t.Errorf("SaveGamePath %q does not contain .termchess", path)
	}

	if !strings.HasSuffix(path, "savegame.fen") {
		t.Errorf("SaveGamePath %q does not end with savegame.fen", path)
	}
}

// TestSaveGame tests saving a board to file
func TestSaveGame(t *testing.T) {
	board := engine.DefaultPosition()

	err := SaveGame(board)
	if err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	path, _ := SaveGamePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Savegame file was not created at %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read savegame file: %v", err)
	}

	fenStr := string(data)
	if fenStr == "" {
		t.Fatal("Savegame file is empty")
	}

	if _, err := engine.FromFEN(fenStr); err != nil {
		t.Fatalf("Savegame contains invalid FEN: %v", err)
	}

	os.Remove(path)
}

// TestSaveGameCreatesDirectory tests that SaveGame creates the .termchess directory
func TestSaveGameCreatesDirectory(t *testing.T) {
	path, _ := SaveGamePath()
	saveDir := filepath.Dir(path)

	os.RemoveAll(saveDir)

	board := engine.DefaultPosition()
	err := SaveGame(board)
	if err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		t.Fatalf("SaveGame did not create .termchess directory at %s", saveDir)
	}

	os.Remove(path)
}

// TestLoadGame tests loading a saved game
func TestLoadGame(t *testing.T) {
	move, err := engine.ParseMoveString("e2 e4", engine.White)
	if err != nil {
		t.Fatalf("ParseMoveString failed: %v", err)
	}
	originalBoard := engine.DefaultPosition().WithMove(engine.White, move)

	if err := SaveGame(originalBoard); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	loadedBoard, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	originalFEN := originalBoard.ToFEN(originalBoard.ActiveColor)
	loadedFEN := loadedBoard.ToFEN(loadedBoard.ActiveColor)
	if loadedFEN != originalFEN {
		t.Errorf("Loaded board FEN does not match original.\nExpected: %s\nGot: %s",
			originalFEN, loadedFEN)
	}

	path, _ := SaveGamePath()
	os.Remove(path)
}

// TestLoadGameNonExistent tests loading when no save file exists
func TestLoadGameNonExistent(t *testing.T) {
	path, _ := SaveGamePath()
	os.Remove(path)

	_, err := LoadGame()
	if err == nil {
		t.Fatal("LoadGame should return error when file doesn't exist")
	}
}

// TestLoadGameInvalidFEN tests loading a file with invalid FEN
func TestLoadGameInvalidFEN(t *testing.T) {
	path, _ := SaveGamePath()
	saveDir := filepath.Dir(path)
	os.MkdirAll(saveDir, 0755)

	err := os.WriteFile(path, []byte("invalid fen string"), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = LoadGame()
	if err == nil {
		t.Fatal("LoadGame should return error for invalid FEN")
	}

	os.Remove(path)
}

// TestSaveLoadRoundTrip tests that save and load preserve the game state
func TestSaveLoadRoundTrip(t *testing.T) {
	board := engine.DefaultPosition()
	moveStrings := []string{"e2 e4", "e7 e5", "g1 f3", "b8 c6", "f1 c4"}

	for _, s := range moveStrings {
		move, err := engine.ParseMoveString(s, board.ActiveColor)
		if err != nil {
			t.Fatalf("Failed to parse move %s: %v", s, err)
		}
		board = board.WithMove(board.ActiveColor, move)
	}

	originalFEN := board.ToFEN(board.ActiveColor)

	if err := SaveGame(board); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	loadedBoard, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	loadedFEN := loadedBoard.ToFEN(loadedBoard.ActiveColor)
	if originalFEN != loadedFEN {
		t.Errorf("Round-trip FEN mismatch.\nOriginal: %s\nLoaded:   %s",
			originalFEN, loadedFEN)
	}

	if board.ActiveColor != loadedBoard.ActiveColor {
		t.Errorf("ActiveColor mismatch: expected %v, got %v",
			board.ActiveColor, loadedBoard.ActiveColor)
	}
	if board.CastlingWhite != loadedBoard.CastlingWhite || board.CastlingBlack != loadedBoard.CastlingBlack {
		t.Errorf("castling eligibility mismatch: expected (%v,%v), got (%v,%v)",
			board.CastlingWhite, board.CastlingBlack, loadedBoard.CastlingWhite, loadedBoard.CastlingBlack)
	}
	if board.HalfMoveClock != loadedBoard.HalfMoveClock {
		t.Errorf("HalfMoveClock mismatch: expected %d, got %d",
			board.HalfMoveClock, loadedBoard.HalfMoveClock)
	}
	if board.FullMoveClock != loadedBoard.FullMoveClock {
		t.Errorf("FullMoveClock mismatch: expected %d, got %d",
			board.FullMoveClock, loadedBoard.FullMoveClock)
	}

	path, _ := SaveGamePath()
	os.Remove(path)
}

// TestDeleteSaveGame tests deleting the save file
func TestDeleteSaveGame(t *testing.T) {
	board := engine.DefaultPosition()
	if err := SaveGame(board); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	path, _ := SaveGamePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("Savegame file was not created")
	}

	if err := DeleteSaveGame(); err != nil {
		t.Fatalf("DeleteSaveGame failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Savegame file still exists after deletion")
	}
}

// TestDeleteSaveGameNonExistent tests deleting when no save file exists
func TestDeleteSaveGameNonExistent(t *testing.T) {
	path, _ := SaveGamePath()
	os.Remove(path)

	if err := DeleteSaveGame(); err != nil {
		t.Fatalf("DeleteSaveGame should not error when file doesn't exist: %v", err)
	}
}

// TestSaveGameExists tests checking if a save file exists
func TestSaveGameExists(t *testing.T) {
	path, _ := SaveGamePath()
	os.Remove(path)

	if SaveGameExists() {
		t.Fatal("SaveGameExists should return false when no save file exists")
	}

	board := engine.DefaultPosition()
	if err := SaveGame(board); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	if !SaveGameExists() {
		t.Fatal("SaveGameExists should return true when save file exists")
	}

	os.Remove(path)
}

// TestSaveGameFilePermissions tests that the save file has correct permissions
func TestSaveGameFilePermissions(t *testing.T) {
	board := engine.DefaultPosition()
	if err := SaveGame(board); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	path, _ := SaveGamePath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat save file: %v", err)
	}

	mode := info.Mode()
	if mode&0400 == 0 {
		t.Errorf("Save file is not readable by owner: %v", mode)
	}

	os.Remove(path)
}
