package ui

import (
	"testing"

	"github.com/mgrdich/wisdomgo/internal/game"
)

func TestNewModelStartsWithDefaultPositionAndBothHuman(t *testing.T) {
	m := NewModel(DefaultConfig(), game.DefaultSearchConfig())

	if m.game.PlayerToMove() != game.Human {
		t.Fatalf("expected the side to move to start human-controlled")
	}
	if m.awaiting != promptNone {
		t.Fatalf("expected no prompt to be active on a fresh model")
	}
	if m.thinking {
		t.Fatalf("expected thinking to start false")
	}
	if m.paused {
		t.Fatalf("expected paused to start false")
	}
	if len(m.log) != 1 {
		t.Fatalf("expected exactly one seed line in the log, got %d", len(m.log))
	}
}

func TestAppendLogTrimsToLogLimit(t *testing.T) {
	m := NewModel(DefaultConfig(), game.DefaultSearchConfig())
	for i := 0; i < logLimit+10; i++ {
		m.appendLog("line")
	}
	if len(m.log) != logLimit {
		t.Fatalf("expected log capped at %d lines, got %d", logLimit, len(m.log))
	}
}
