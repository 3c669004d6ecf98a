package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "Easy", Easy.String())
	assert.Equal(t, "Medium", Medium.String())
	assert.Equal(t, "Hard", Hard.String())
	assert.Equal(t, "Unknown", Difficulty(99).String())
}

func TestEngineTypeString(t *testing.T) {
	assert.Equal(t, "Internal", TypeInternal.String())
	assert.Equal(t, "Unknown", EngineType(99).String())
}
