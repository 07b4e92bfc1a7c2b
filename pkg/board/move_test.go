package board_test

import (
	"testing"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestParseMoveNull(t *testing.T) {
	m, err := board.ParseMove("0000")
	assert.NoError(t, err)
	assert.True(t, m.IsNull())
	assert.Equal(t, "0000", m.String())
}

func TestParseMoveClone(t *testing.T) {
	m, err := board.ParseMove("c3")
	assert.NoError(t, err)
	assert.Equal(t, board.Clone, m.Kind)
	assert.Equal(t, board.C3, m.From)
	assert.Equal(t, board.C3, m.To)
	assert.Equal(t, "c3", m.String())
}

func TestParseMoveJump(t *testing.T) {
	m, err := board.ParseMove("a1c3")
	assert.NoError(t, err)
	assert.Equal(t, board.Jump, m.Kind)
	assert.Equal(t, board.A1, m.From)
	assert.Equal(t, board.C3, m.To)
	assert.Equal(t, "a1c3", m.String())
}

func TestParseMoveRoundTrip(t *testing.T) {
	for _, str := range []string{"0000", "a1", "g7", "a1c3", "d4f4"} {
		m, err := board.ParseMove(str)
		assert.NoError(t, err)
		assert.Equal(t, str, m.String())
	}
}

func TestParseMoveInvalid(t *testing.T) {
	_, err := board.ParseMove("z9")
	assert.Error(t, err)
	_, err = board.ParseMove("toolong12")
	assert.Error(t, err)
}
