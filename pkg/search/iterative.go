package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Info is one iteration's progress report, emitted after every completed
// depth. The protocol boundary renders this as an `info` line.
//
// MultiPV, CurrMove, CurrMoveNumber, CurrLine and Refutation are never set
// by this single-PV searcher; they exist so the protocol driver's wire
// format can carry them unchanged if a caller ever populates one.
type Info struct {
	Depth    int
	SelDepth int
	Score    int
	Elapsed  time.Duration
	Nodes    uint64
	NPS      uint64
	HashFull lang.Optional[int]
	PV       []board.Move

	MultiPV        lang.Optional[int]
	CurrMove       lang.Optional[board.Move]
	CurrMoveNumber lang.Optional[int]
	CurrLine       []board.Move
	Refutation     []board.Move
}

func (i Info) String() string {
	var pv []string
	for _, m := range i.PV {
		pv = append(pv, m.String())
	}
	return fmt.Sprintf("depth %d score cp %d time %d nodes %d nps %d pv %v",
		i.Depth, i.Score, i.Elapsed.Milliseconds(), i.Nodes, i.NPS, strings.Join(pv, " "))
}

// Best runs iterative deepening from depth 1 to MaxPly, reporting progress
// through onInfo after every completed iteration, and returns the best move
// found (the null move if no iteration completed before a stop).
func (s *Searcher) Best(pos *board.Position, params lang.Optional[GoParams], onInfo func(Info)) board.Move {
	g := NewGlobals(pos.Side(), params)
	return s.BestWithGlobals(pos, g, onInfo)
}

// BestWithGlobals runs the same iterative-deepening driver as Best, but
// against a Globals handle constructed (and stoppable) by the caller. The
// protocol boundary uses this to retain a handle for its `stop` command
// while the search runs on another goroutine.
func (s *Searcher) BestWithGlobals(pos *board.Position, g *Globals, onInfo func(Info)) board.Move {
	params := g.params

	best := board.NullMove
	for depth := 1; depth <= MaxPly; depth++ {
		result := s.Search(pos, -Infinite, Infinite, depth, 1, g)

		if depth > 1 && g.IsStopped() {
			break
		}
		if len(result.PV) == 0 {
			break
		}

		best = result.PV[0]
		if onInfo != nil {
			onInfo(Info{
				Depth:    depth,
				SelDepth: depth,
				Score:    result.Score,
				Elapsed:  g.Elapsed(),
				Nodes:    g.Nodes(),
				NPS:      nps(g.Nodes(), g.Elapsed()),
				HashFull: lang.Some(s.TT.Fill()),
				PV:       result.PV,
			})
		}

		if limit, ok := params.V(); ok {
			if d, ok := limit.Depth.V(); ok && depth >= d {
				break
			}
		}
	}
	return best
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return uint64(float64(nodes) / secs)
}
