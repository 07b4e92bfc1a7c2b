package search

import (
	"sync"
	"sync/atomic"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/tt"
)

// Perft counts leaves at depth by exhaustive move enumeration, sharing the
// same Position and move generator as search. At depth == 1 it takes the
// fast path of just counting the legal-move list.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 1 {
		return countMoves(pos)
	}

	var count uint64
	for _, m := range pos.LegalMoves() {
		count += Perft(pos.MakeMove(m), depth-1)
	}
	return count
}

// countMoves returns the size of the legal move list, except that a side
// with zero stones contributes 0 (the game is already decided for it, and
// no null move is counted as a leaf).
func countMoves(pos *board.Position) uint64 {
	if pos.Pieces(pos.Side()) == 0 {
		return 0
	}
	return uint64(len(pos.LegalMoves()))
}

// PerftTT is Perft backed by a shared transposition table keyed on
// (position hash, depth).
func PerftTT(pos *board.Position, depth int, table *tt.PerftTable) uint64 {
	if depth == 1 {
		return countMoves(pos)
	}

	if count, ok := table.Probe(pos.Hash(), depth); ok {
		return count
	}

	var count uint64
	for _, m := range pos.LegalMoves() {
		count += PerftTT(pos.MakeMove(m), depth-1, table)
	}

	table.Write(pos.Hash(), depth, count)
	return count
}

// PerftParallel splits the root moves across a pool of threads workers,
// each running the single-threaded, TT-backed Perft on its own clone of
// the position. A shared atomic index hands out root moves one at a time.
func PerftParallel(pos *board.Position, depth, threads int, table *tt.PerftTable) uint64 {
	if threads < 1 {
		threads = 1
	}

	if depth == 1 {
		return countMoves(pos)
	}

	moves := pos.LegalMoves()
	if len(moves) < threads {
		threads = len(moves)
	}
	if threads < 1 {
		threads = 1
	}

	var next atomic.Int64
	var sum atomic.Uint64

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if int(i) >= len(moves) {
					return
				}
				child := pos.MakeMove(moves[i])
				sum.Add(PerftTT(child, depth-1, table))
			}
		}()
	}
	wg.Wait()

	return sum.Load()
}
