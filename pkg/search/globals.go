// Package search implements iterative-deepening negamax with alpha-beta,
// principal-variation rediscovery, and the time/cancellation machinery that
// drives it.
package search

import (
	"sync/atomic"
	"time"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

const (
	MaxPly    = 128
	Infinite  = 300001
	MateScore = 300000
)

// GoParams mirrors the `go` command's key/value parameters. Every field is
// optional: the controller may specify any subset.
type GoParams struct {
	Depth      lang.Optional[int]
	Nodes      lang.Optional[uint64]
	MoveTime   lang.Optional[time.Duration]
	Infinite   bool
	MovesToGo  lang.Optional[int]
	Time, Inc  [board.NumColors]lang.Optional[time.Duration]
	SearchMoves []board.Move
}

// safetyMargin is subtracted from the budget on the last expected move of a
// time control, to leave headroom for process/IO overhead.
const safetyMargin = 50 * time.Millisecond

// stopSampleMask: the time manager is only consulted every 4096 nodes,
// sampled off the low bits of the node counter (a power-of-two period keeps
// the check a single mask-and-compare).
const stopSampleMask = 4096 - 1

// Globals is the "borrowed handle with interior atomics" shared by every
// frame of a single search: a stop flag and node counter mutated
// concurrently by the search goroutine and read by the protocol driver's
// `stop` handler, plus immutable fields set once before the search begins.
type Globals struct {
	side   board.Color
	start  time.Time
	params lang.Optional[GoParams]

	stop  atomic.Bool
	nodes atomic.Uint64
}

// NewGlobals initializes a fresh Globals for a search from the given side,
// starting now, with the given (optional) go-parameters.
func NewGlobals(side board.Color, params lang.Optional[GoParams]) *Globals {
	return &Globals{side: side, start: time.Now(), params: params}
}

// Halt latches the stop flag. Idempotent; safe to call from any goroutine.
func (g *Globals) Halt() {
	g.stop.Store(true)
}

// IsStopped reports whether the stop flag is latched, without itself
// consulting the time manager.
func (g *Globals) IsStopped() bool {
	return g.stop.Load()
}

// Nodes returns the current node counter.
func (g *Globals) Nodes() uint64 {
	return g.nodes.Load()
}

// Elapsed returns the duration since the search began.
func (g *Globals) Elapsed() time.Duration {
	return time.Since(g.start)
}

// advance increments the node counter and, every 4096 nodes, consults the
// time manager, latching the stop flag if the budget is exhausted. It does
// not itself decide whether the caller should return early; ply 0 callers
// ignore the stop flag by design (see Search's node procedure).
func (g *Globals) advance() {
	n := g.nodes.Add(1)
	if g.stop.Load() {
		return
	}
	if n&stopSampleMask != 0 {
		return
	}
	if g.checkTime() {
		g.stop.Store(true)
	}
}

// checkTime implements the time-manager formula: never time out in
// infinite mode; otherwise budget from time[side]/inc[side] (defaulting
// movestogo to 30, and shaving a safety margin off the last move of the
// control), or from a flat movetime, whichever is present.
func (g *Globals) checkTime() bool {
	params, ok := g.params.V()
	if !ok {
		return false
	}
	if params.Infinite {
		return false
	}

	elapsed := g.Elapsed()

	t, hasTime := params.Time[g.side].V()
	inc, hasInc := params.Inc[g.side].V()
	if hasTime && hasInc {
		movesToGo, _ := params.MovesToGo.V()
		if movesToGo <= 0 {
			movesToGo = 30
		}

		budget := (t + time.Duration(movesToGo-1)*inc) / time.Duration(movesToGo)
		if movesToGo == 1 {
			budget -= safetyMargin
		}
		return elapsed >= budget
	}

	if mt, ok := params.MoveTime.V(); ok {
		return elapsed >= mt
	}

	return false
}
