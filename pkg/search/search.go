package search

import (
	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/eval"
	"github.com/ataxxgo/ataxxgo/pkg/tt"
)

// Result is a search outcome: a score from the side-to-move's perspective
// at the root of the call, and the principal variation that achieves it.
type Result struct {
	Score int
	PV    []board.Move
}

// Searcher runs iterative-deepening negamax with alpha-beta, PV
// rediscovery, move ordering via a shared transposition table, and
// mate-distance pruning.
type Searcher struct {
	TT   *tt.SearchTable
	Eval eval.Evaluator
}

// NewSearcher builds a Searcher sharing the given transposition table.
func NewSearcher(table *tt.SearchTable, evaluator eval.Evaluator) *Searcher {
	return &Searcher{TT: table, Eval: evaluator}
}

// Search runs the node procedure at (alpha, beta, depth, ply). See
// Searcher.Best for the iterative-deepening driver built on top of this.
func (s *Searcher) Search(pos *board.Position, alpha, beta, depth, ply int, g *Globals) Result {
	g.advance()

	if depth <= 0 {
		return Result{Score: s.Eval.Evaluate(pos)}
	}

	if ply > 0 {
		if g.IsStopped() {
			return Result{}
		}
		if pos.Halfmoves() >= 100 {
			return Result{}
		}
		if ply >= MaxPly {
			return Result{Score: s.Eval.Evaluate(pos)}
		}

		if a := -MateScore + ply; a > alpha {
			alpha = a
		}
		if b := MateScore - ply; b < beta {
			beta = b
		}
		if alpha >= beta {
			return Result{Score: alpha}
		}
	}

	pvNode := alpha != beta-1
	alphaInitial := alpha

	var ttMove board.Move
	hasTTMove := false

	entry := s.TT.Probe(pos.Hash())
	if entry.Found {
		ttMove = entry.Move
		hasTTMove = true

		if entry.Depth >= depth {
			switch {
			case entry.Bound == tt.Exact:
				return Result{Score: entry.Score, PV: []board.Move{entry.Move}}
			case entry.Bound == tt.LowerBound && entry.Score >= beta:
				return Result{Score: entry.Score, PV: []board.Move{entry.Move}}
			case entry.Bound == tt.UpperBound && entry.Score < alpha:
				return Result{Score: entry.Score, PV: []board.Move{entry.Move}}
			}
		}
	}

	moves := pos.LegalMoves()
	if len(moves) == 1 && moves[0].IsNull() {
		return Result{Score: s.Eval.Evaluate(pos), PV: []board.Move{board.NullMove}}
	}
	if len(moves) == 0 {
		return Result{Score: -MateScore + ply}
	}

	order(pos, moves, ttMove, hasTTMove)

	best := -Infinite
	var pv []board.Move

	for i, m := range moves {
		child := pos.MakeMove(m)

		var childResult Result
		if i == 0 {
			childResult = s.Search(child, -beta, -alpha, depth-1, ply+1, g)
		} else {
			childResult = s.Search(child, -alpha-1, -alpha, depth-1, ply+1, g)
			if -childResult.Score > alpha && -childResult.Score < beta {
				childResult = s.Search(child, -beta, -alpha, depth-1, ply+1, g)
			}
		}

		score := -childResult.Score
		childPV := childResult.PV

		if ply > 0 && g.IsStopped() {
			return Result{}
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if pvNode {
					pv = append([]board.Move{m}, childPV...)
				}
			}
		}
		if alpha >= beta {
			break
		}
	}

	var bound tt.Bound
	switch {
	case best >= beta:
		bound = tt.LowerBound
	case best < alphaInitial:
		bound = tt.UpperBound
	default:
		bound = tt.Exact
	}
	if len(pv) > 0 {
		s.TT.Write(pos.Hash(), pv[0], bound, depth, best)
	}

	return Result{Score: best, PV: pv}
}

// order sorts moves descending by a cheap heuristic score via insertion
// sort: the TT move first, then by the material differential the move
// produces for the mover.
func order(pos *board.Position, moves []board.Move, ttMove board.Move, hasTTMove bool) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		if hasTTMove && m.Equals(ttMove) {
			scores[i] = 1000000
			continue
		}
		scores[i] = moveScore(pos, m)
	}

	for i := 1; i < len(moves); i++ {
		m, sc := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = sc
	}
}

func moveScore(pos *board.Position, m board.Move) int {
	child := pos.MakeMove(m)
	diff := child.Pieces(pos.Side()).PopCount() - child.Pieces(pos.Side().Opponent()).PopCount()
	if diff > 1 {
		return 10000 + diff
	}
	return diff
}
