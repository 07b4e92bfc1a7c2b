// perft is a movegen debugging tool. It counts leaf nodes reachable from a
// position at a fixed depth by exhaustive enumeration.
package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/search"
	"github.com/ataxxgo/ataxxgo/pkg/tt"
)

var (
	position string
	depth    int
	threads  int
	size     int
)

func init() {
	flag.StringVar(&position, "fen", board.StartPos, "Start position")
	flag.StringVar(&position, "f", board.StartPos, "Start position (shorthand)")
	flag.IntVar(&depth, "depth", 4, "Search depth, clamped to [1, 100]")
	flag.IntVar(&depth, "d", 4, "Search depth (shorthand)")
	flag.IntVar(&threads, "threads", 1, "Worker threads, clamped to [1, hardware limit]")
	flag.IntVar(&threads, "t", 1, "Worker threads (shorthand)")
	flag.IntVar(&size, "size", 64, "Transposition table size in MB, clamped to [1, 1048576]")
	flag.IntVar(&size, "s", 64, "Transposition table size (shorthand)")
}

func main() {
	flag.Parse()

	depth = clamp(depth, 1, 100)
	threads = clamp(threads, 1, runtime.NumCPU())
	size = clamp(size, 1, 1<<20)

	pos := board.Parse(position)

	table := tt.NewPerftTable(size)
	count := search.PerftParallel(pos, depth, threads, table)

	fmt.Println(count)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
