package board_test

import (
	"testing"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardHighBitsZero(t *testing.T) {
	full := board.FullBitboard
	assert.Equal(t, uint64(0), uint64(full)>>49)

	shifted := full.North().North().North().North().North().North().North()
	assert.Equal(t, uint64(0), uint64(shifted)>>49)
}

func TestBitboardEastWestNoWrap(t *testing.T) {
	g1 := board.BitMask(board.G1)
	assert.Equal(t, board.EmptyBitboard, g1.East())

	a1 := board.BitMask(board.A1)
	assert.Equal(t, board.EmptyBitboard, a1.West())

	assert.Equal(t, board.BitMask(board.B1), a1.East())
	assert.Equal(t, board.BitMask(board.F1), g1.West())
}

func TestBitboardPopCount(t *testing.T) {
	bb := board.BitMask(board.A1) | board.BitMask(board.G7)
	assert.Equal(t, 2, bb.PopCount())
}

func TestBitboardSquaresAscending(t *testing.T) {
	bb := board.BitMask(board.G7) | board.BitMask(board.A1) | board.BitMask(board.D4)
	assert.Equal(t, []board.Square{board.A1, board.D4, board.G7}, bb.Squares())
}

func TestAdjacentCenter(t *testing.T) {
	// D4 is the exact center of the 7x7 grid; all 8 king-step neighbors are on-board.
	adj := board.AdjacentForTest(board.BitMask(board.D4))
	assert.Equal(t, 8, adj.PopCount())
	assert.False(t, adj.IsSet(board.D4))
}

func TestAdjacentCorner(t *testing.T) {
	adj := board.AdjacentForTest(board.BitMask(board.A1))
	assert.Equal(t, 3, adj.PopCount())
	assert.True(t, adj.IsSet(board.B1))
	assert.True(t, adj.IsSet(board.A2))
	assert.True(t, adj.IsSet(board.B2))
}

func TestJumpsCenter(t *testing.T) {
	// D4 is far enough from every edge that all 16 ring offsets land on-board.
	j := board.JumpsForTest(board.BitMask(board.D4))
	assert.Equal(t, 16, j.PopCount())
	assert.False(t, j.IsSet(board.D4))
	assert.False(t, board.AdjacentForTest(board.BitMask(board.D4)).Intersect(j) != 0)
}

func TestJumpsCorner(t *testing.T) {
	j := board.JumpsForTest(board.BitMask(board.A1))
	// From a1: (2,0)=c1, (0,2)=a3, (2,2)=c3, (2,1)=c2, (1,2)=b3 -- all on-board.
	assert.Equal(t, 5, j.PopCount())
}
