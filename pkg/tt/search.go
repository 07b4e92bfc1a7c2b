package tt

import (
	"github.com/ataxxgo/ataxxgo/pkg/board"
)

// Bound indicates how a stored score relates to the search window that
// produced it.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// SearchEntry is the decoded contents of a search transposition slot.
type SearchEntry struct {
	Move  board.Move
	Bound Bound
	Depth int
	Score int
	Found bool
}

// SearchTable is the transposition table used by the negamax search.
// Payload layout (64 bits): move[0:14] | bound[14:16] | score[16:48] | depth[56:64].
type SearchTable struct {
	clusters []cluster
}

// NewSearchTable allocates a table sized to the given MB budget.
func NewSearchTable(mb int) *SearchTable {
	return &SearchTable{clusters: make([]cluster, sizeForMB(mb))}
}

// Resize replaces the backing array and clears it.
func (t *SearchTable) Resize(mb int) {
	t.clusters = make([]cluster, sizeForMB(mb))
}

func (t *SearchTable) Clear() {
	for i := range t.clusters {
		t.clusters[i].clear()
	}
}

// Fill estimates table occupancy in permille (0-1000), sampling at most the
// first 1000 clusters, matching the UAI `hashfull` convention.
func (t *SearchTable) Fill() int {
	n := len(t.clusters)
	if n > 1000 {
		n = 1000
	}
	if n == 0 {
		return 0
	}

	var used int
	for i := 0; i < n; i++ {
		for j := 0; j < ClusterSize; j++ {
			if t.clusters[i][j].data.Load() != 0 {
				used++
			}
		}
	}
	return used * 1000 / (n * ClusterSize)
}

func (t *SearchTable) index(key uint64) int {
	return int(key % uint64(len(t.clusters)))
}

// Probe returns the decoded entry for key, or a zero-value entry with
// Found == false on a miss.
func (t *SearchTable) Probe(key uint64) SearchEntry {
	data, ok := t.clusters[t.index(key)].probe(key)
	if !ok {
		return SearchEntry{}
	}
	return SearchEntry{
		Move:  decodeMove(data),
		Bound: Bound((data >> 14) & 0x3),
		Score: int(int32(uint32(data >> 16))),
		Depth: int(data >> 56),
		Found: true,
	}
}

// Write stores a search result, replacing the cluster's shallowest entry.
func (t *SearchTable) Write(key uint64, m board.Move, b Bound, depth, score int) {
	data := encodeMove(m) | uint64(b)<<14 | uint64(uint32(int32(score)))<<16 | uint64(depth)<<56
	t.clusters[t.index(key)].write(key, data)
}

// encodeMove packs from(6)/to(6)/kind(2) into 14 bits.
func encodeMove(m board.Move) uint64 {
	return uint64(m.From) | uint64(m.To)<<6 | uint64(m.Kind)<<12
}

func decodeMove(data uint64) board.Move {
	return board.Move{
		From: board.Square(data & 0x3F),
		To:   board.Square((data >> 6) & 0x3F),
		Kind: board.Kind((data >> 12) & 0x3),
	}
}
