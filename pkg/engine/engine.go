package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/eval"
	"github.com/ataxxgo/ataxxgo/pkg/search"
	"github.com/ataxxgo/ataxxgo/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation/runtime options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden
	// by go-command parameters if provided.
	Depth uint
	// Hash is the transposition table size in MB.
	Hash uint
	// Threads is the perft worker pool size. It has no effect on the
	// interactive search, which always runs on a single worker thread.
	Threads uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, threads=%v}", o.Depth, o.Hash, o.Threads)
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// Engine encapsulates game state, the shared transposition table, and the
// lifecycle of at most one in-flight search.
type Engine struct {
	name, author string
	opts         Options

	table    *tt.SearchTable
	searcher *search.Searcher

	pos *board.Position

	mu     sync.Mutex
	active *search.Globals // non-nil while a search goroutine is running
	wg     sync.WaitGroup
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		opts:   Options{Hash: 16, Threads: 1},
	}
	for _, fn := range opts {
		fn(e)
	}

	e.reset()

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(mb uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = mb
	if e.table != nil {
		e.table.Resize(int(mb))
	}
}

// SetThreads sets the perft worker pool size advertised over the protocol.
func (e *Engine) SetThreads(n uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Threads = n
}

// Position returns the current position in the engine's textual notation.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.String()
}

// reset rebuilds the table, searcher and position. Called with the engine
// already constructed; callers hold e.mu or are in New, before publication.
func (e *Engine) reset() {
	e.table = tt.NewSearchTable(int(e.opts.Hash))
	e.searcher = search.NewSearcher(e.table, eval.MaterialDiff{})
	e.pos = board.Parse(board.StartPos)
}

// Reset replaces the current position and clears the transposition table.
func (e *Engine) Reset(ctx context.Context, position string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltActiveLocked()

	e.pos = board.Parse(position)
	e.table.Clear()

	logw.Infof(ctx, "Reset: %v", e.pos)
}

// Move applies a single move, usually an opponent move, to the current
// position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltActiveLocked()

	for _, m := range e.pos.LegalMoves() {
		if !m.Equals(candidate) {
			continue
		}

		e.pos = e.pos.MakeMove(m)
		logw.Infof(ctx, "Move %v: %v", m, e.pos)
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// Go launches a search of the current position on a background goroutine.
// onInfo is invoked after every completed iteration; onBestMove is invoked
// exactly once, when the goroutine finishes (stopped, or the iteration
// limit was reached). Returns an error if a search is already active.
func (e *Engine) Go(ctx context.Context, params search.GoParams, onInfo func(search.Info), onBestMove func(board.Move)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return fmt.Errorf("search already active")
	}

	if _, ok := params.Depth.V(); !ok && e.opts.Depth > 0 {
		params.Depth = lang.Some(int(e.opts.Depth))
	}

	pos := e.pos
	g := search.NewGlobals(pos.Side(), lang.Some(params))
	e.active = g

	logw.Infof(ctx, "Go %v, params=%+v", pos, params)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		best := e.searcher.BestWithGlobals(pos, g, onInfo)

		e.mu.Lock()
		if e.active == g {
			e.active = nil
		}
		e.mu.Unlock()

		if onBestMove != nil {
			onBestMove(best)
		}
	}()
	return nil
}

// Stop latches the stop flag on the active search, if any, and blocks until
// its goroutine has finished delivering the bestmove callback.
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()

	if active == nil {
		return
	}

	logw.Infof(ctx, "Stop")
	active.Halt()
	e.wg.Wait()
}

// haltActiveLocked halts any active search and waits for its goroutine to
// finish. Called with e.mu held; releases it around the wait so the
// goroutine's own locking in Go does not deadlock.
func (e *Engine) haltActiveLocked() {
	if e.active == nil {
		return
	}
	e.active.Halt()

	e.mu.Unlock()
	e.wg.Wait()
	e.mu.Lock()
}
