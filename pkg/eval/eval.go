// Package eval contains static position evaluation logic.
package eval

import "github.com/ataxxgo/ataxxgo/pkg/board"

// Material is the per-stone centipawn-like weight used by MaterialDiff.Evaluate.
// Must stay in [100, 1000] per the material-difference formula it drives.
const Material = 100

// Evaluator is a pure, static position evaluator: given a position, it
// returns a score from the side-to-move's perspective. Kept as an interface
// so search can be exercised against a pluggable evaluation function.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// MaterialDiff scores a position purely by stone-count differential,
// odd-symmetric under a side flip: MaterialDiff.Evaluate(pos) ==
// -MaterialDiff.Evaluate(pos after a null move), since swapping which side
// is "us" negates the sign of the difference.
type MaterialDiff struct{}

func (MaterialDiff) Evaluate(pos *board.Position) int {
	us := pos.Side()
	them := us.Opponent()
	return Material * (pos.Pieces(us).PopCount() - pos.Pieces(them).PopCount())
}
