package tt_test

import (
	"testing"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/tt"
	"github.com/stretchr/testify/assert"
)

func TestSearchTableProbeMiss(t *testing.T) {
	table := tt.NewSearchTable(1)
	e := table.Probe(12345)
	assert.False(t, e.Found)
}

func TestSearchTableRoundTrip(t *testing.T) {
	table := tt.NewSearchTable(1)
	m := board.Move{From: board.A1, To: board.C3, Kind: board.Jump}

	table.Write(42, m, tt.LowerBound, 7, -1234)

	e := table.Probe(42)
	assert.True(t, e.Found)
	assert.True(t, m.Equals(e.Move))
	assert.Equal(t, tt.LowerBound, e.Bound)
	assert.Equal(t, 7, e.Depth)
	assert.Equal(t, -1234, e.Score)
}

func TestSearchTableKeyMismatchIsMiss(t *testing.T) {
	// A single-cluster table forces keys 7 and 8 to the same bucket; a probe
	// for 8 must still miss because the stored tag reconstructs to 7.
	table := tt.NewSearchTableForTest(1)
	table.Write(7, board.Move{From: board.A1, To: board.A1, Kind: board.Clone}, tt.Exact, 3, 100)

	assert.False(t, table.Probe(8).Found)
	assert.True(t, table.Probe(7).Found)
}

func TestSearchTableReplacesShallowestInCluster(t *testing.T) {
	table := tt.NewSearchTableForTest(1)

	for i := uint64(0); i < tt.ClusterSize; i++ {
		table.Write(i, board.Move{From: board.A1, To: board.A1, Kind: board.Clone}, tt.Exact, int(i)+1, 0)
	}
	// The cluster is now full; key 0 (depth 1) is the shallowest entry and
	// must be the one evicted by a new write.
	table.Write(tt.ClusterSize, board.Move{From: board.B1, To: board.B1, Kind: board.Clone}, tt.Exact, 99, 0)

	assert.False(t, table.Probe(0).Found)

	e := table.Probe(tt.ClusterSize)
	assert.True(t, e.Found)
	assert.Equal(t, 99, e.Depth)
}

func TestSearchTableFill(t *testing.T) {
	table := tt.NewSearchTableForTest(1)
	assert.Equal(t, 0, table.Fill())

	for i := uint64(0); i < tt.ClusterSize; i++ {
		table.Write(i, board.Move{From: board.A1, To: board.A1, Kind: board.Clone}, tt.Exact, int(i)+1, 0)
	}
	assert.Equal(t, 1000, table.Fill())
}

func TestPerftTableRoundTrip(t *testing.T) {
	table := tt.NewPerftTable(1)
	table.Write(99, 4, 155888)

	count, ok := table.Probe(99, 4)
	assert.True(t, ok)
	assert.Equal(t, uint64(155888), count)

	_, ok = table.Probe(99, 3)
	assert.False(t, ok, "depth mismatch must miss")
}

func TestPerftTableClear(t *testing.T) {
	table := tt.NewPerftTable(1)
	table.Write(1, 2, 256)
	table.Clear()

	_, ok := table.Probe(1, 2)
	assert.False(t, ok)
}
