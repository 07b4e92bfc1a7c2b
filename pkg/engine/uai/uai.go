// Package uai contains a driver for using the engine under the Universal
// Ataxx Interface protocol: a line-oriented, stdin/stdout command set
// modeled closely on UCI, adapted to Ataxx's position/move notation.
package uai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/engine"
	"github.com/ataxxgo/ataxxgo/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uai"

// Driver implements a UAI driver for an engine. It is activated if sent "uai".
type Driver struct {
	e *engine.Engine

	out chan<- string

	spin   map[string]SpinOption
	combo  map[string]ComboOption
	str    map[string]StringOption
	check  map[string]CheckOption
	button map[string]ButtonOption

	active atomic.Bool // a `go` is outstanding and awaits a bestmove

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver constructs a driver reading commands from in and writing
// protocol output to the returned channel. The Hash and Threads spin options
// are registered before the processing goroutine starts; that goroutine
// advertises the registered options at once, without waiting for input, and
// Register* calls made after NewDriver returns are not synchronized with it.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		spin:   map[string]SpinOption{},
		combo:  map[string]ComboOption{},
		str:    map[string]StringOption{},
		check:  map[string]CheckOption{},
		button: map[string]ButtonOption{},
		quit:   make(chan struct{}),
	}

	d.RegisterSpin(SpinOption{
		Name: "Hash", Default: int(e.Options().Hash), Min: 1, Max: 1 << 20,
		Handler: func(v int) { e.SetHash(uint(v)) },
	})
	d.RegisterSpin(SpinOption{
		Name: "Threads", Default: int(e.Options().Threads), Min: 1, Max: 512,
		Handler: func(v int) { e.SetThreads(uint(v)) },
	})

	go d.process(ctx, in)
	return d, out
}

func (d *Driver) RegisterSpin(o SpinOption)     { d.spin[o.Name] = o }
func (d *Driver) RegisterCombo(o ComboOption)   { d.combo[o.Name] = o }
func (d *Driver) RegisterString(o StringOption) { d.str[o.Name] = o }
func (d *Driver) RegisterCheck(o CheckOption)   { d.check[o.Name] = o }
func (d *Driver) RegisterButton(o ButtonOption) { d.button[o.Name] = o }

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UAI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	for _, o := range d.spin {
		d.out <- fmt.Sprintf("option name %v type spin default %v min %v max %v", o.Name, o.Default, o.Min, o.Max)
	}
	for _, o := range d.combo {
		d.out <- fmt.Sprintf("option name %v type combo default %v var %v", o.Name, o.Default, strings.Join(o.Allowed, " var "))
	}
	for _, o := range d.str {
		d.out <- fmt.Sprintf("option name %v type string default %v", o.Name, o.Default)
	}
	for _, o := range d.check {
		d.out <- fmt.Sprintf("option name %v type check default %v", o.Name, o.Default)
	}
	for _, o := range d.button {
		d.out <- fmt.Sprintf("option name %v type button", o.Name)
	}

	d.out <- "uaiok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}
			cmd, args := parts[0], parts[1:]

			switch cmd {
			case "uai":
				// Already answered above; a GUI may resend it.

			case "isready":
				d.out <- "readyok"

			case "setoption":
				d.setOption(args)

			case "position":
				d.position(ctx, args, line)

			case "go":
				d.goCmd(ctx, args)

			case "stop":
				d.stop(ctx)

			case "quit", "exit":
				d.stop(ctx)
				return

			default:
				logw.Warningf(ctx, "Unknown command %q", cmd)
			}

		case <-d.quit:
			d.stop(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// setOption parses "name <n> [value <v>]" and dispatches to whichever
// registry holds that name.
func (d *Driver) setOption(args []string) {
	if len(args) < 2 || args[0] != "name" {
		return
	}
	name := args[1]

	if b, ok := d.button[name]; ok {
		b.Handler()
		return
	}

	if len(args) < 4 || args[2] != "value" {
		return
	}
	value := strings.Join(args[3:], " ")

	switch {
	case d.hasSpin(name):
		if n, err := strconv.Atoi(value); err == nil {
			o := d.spin[name]
			o.setOption(n)
		}
	case d.hasCombo(name):
		o := d.combo[name]
		o.setOption(value)
	case d.hasString(name):
		d.str[name].Handler(value)
	case d.hasCheck(name):
		if b, err := strconv.ParseBool(value); err == nil {
			d.check[name].Handler(b)
		}
	}
}

func (d *Driver) hasSpin(name string) bool   { _, ok := d.spin[name]; return ok }
func (d *Driver) hasCombo(name string) bool  { _, ok := d.combo[name]; return ok }
func (d *Driver) hasString(name string) bool { _, ok := d.str[name]; return ok }
func (d *Driver) hasCheck(name string) bool  { _, ok := d.check[name]; return ok }

func (d *Driver) position(ctx context.Context, args []string, line string) {
	if len(args) == 0 {
		return
	}

	pos := board.StartPos
	i := 1
	switch args[0] {
	case "startpos":
		// pos already set.
	case "fen":
		// The position string is "<board> <side> <halfmoves>"; it runs up to
		// the "moves" keyword or the end of the line.
		if len(args) < 2 {
			logw.Errorf(ctx, "Malformed position line: %v", line)
			return
		}
		i = 2
		for i < len(args) && args[i] != "moves" {
			i++
		}
		pos = strings.Join(args[1:i], " ")
	default:
		logw.Errorf(ctx, "Malformed position line: %v", line)
		return
	}

	d.e.Reset(ctx, pos)

	if i < len(args) && args[i] == "moves" {
		for _, m := range args[i+1:] {
			if err := d.e.Move(ctx, m); err != nil {
				logw.Errorf(ctx, "Invalid move %q in %q: %v", m, line, err)
				return
			}
		}
	}
}

func (d *Driver) goCmd(ctx context.Context, args []string) {
	var params search.GoParams

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "nodes":
			if i++; i < len(args) {
				if n, err := strconv.ParseUint(args[i], 10, 64); err == nil {
					params.Nodes = some(n)
				}
			}
		case "movetime":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.MoveTime = someDuration(n)
				}
			}
		case "depth":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.Depth = some(n)
				}
			}
		case "wtime":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.Time[board.Cross] = someDuration(n)
				}
			}
		case "btime":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.Time[board.Knot] = someDuration(n)
				}
			}
		case "winc":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.Inc[board.Cross] = someDuration(n)
				}
			}
		case "binc":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.Inc[board.Knot] = someDuration(n)
				}
			}
		case "movestogo":
			if i++; i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					params.MovesToGo = some(n)
				}
			}
		case "infinite":
			params.Infinite = true
		case "ponder":
			// Accepted but not distinguished from a normal search; the engine
			// always reports a bestmove on completion or stop.
		case "searchmoves":
			for ; i+1 < len(args); i++ {
				if m, err := board.ParseMove(args[i+1]); err == nil {
					params.SearchMoves = append(params.SearchMoves, m)
				} else {
					break
				}
			}
		}
	}

	d.active.Store(true)
	err := d.e.Go(ctx, params, func(info search.Info) {
		if d.active.Load() {
			d.out <- printInfo(info)
		}
	}, func(best board.Move) {
		if d.active.CAS(true, false) {
			d.out <- fmt.Sprintf("bestmove %v", best)
		}
	})
	if err != nil {
		logw.Errorf(ctx, "go failed: %v", err)
		d.active.Store(false)
	}
}

func (d *Driver) stop(ctx context.Context) {
	d.e.Stop(ctx)
}

func printInfo(i search.Info) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", i.Depth))
	parts = append(parts, fmt.Sprintf("seldepth %v", i.SelDepth))
	parts = append(parts, fmt.Sprintf("time %v", i.Elapsed.Milliseconds()))
	if n, ok := i.MultiPV.V(); ok {
		parts = append(parts, fmt.Sprintf("multipv %v", n))
	}
	parts = append(parts, fmt.Sprintf("score cp %v", i.Score))
	if m, ok := i.CurrMove.V(); ok {
		parts = append(parts, fmt.Sprintf("currmove %v", m))
	}
	if n, ok := i.CurrMoveNumber.V(); ok {
		parts = append(parts, fmt.Sprintf("currmovenumber %v", n))
	}
	if n, ok := i.HashFull.V(); ok {
		parts = append(parts, fmt.Sprintf("hashfull %v", n))
	}
	parts = append(parts, fmt.Sprintf("nodes %v", i.Nodes))
	parts = append(parts, fmt.Sprintf("nps %v", i.NPS))
	if len(i.Refutation) > 0 {
		parts = append(parts, "refutation", movesToString(i.Refutation))
	}
	if len(i.CurrLine) > 0 {
		parts = append(parts, "currline", movesToString(i.CurrLine))
	}
	if len(i.PV) > 0 {
		parts = append(parts, "pv", movesToString(i.PV))
	}
	return strings.Join(parts, " ")
}

func movesToString(moves []board.Move) string {
	s := make([]string, len(moves))
	for i, m := range moves {
		s[i] = m.String()
	}
	return strings.Join(s, " ")
}

func some[T any](v T) lang.Optional[T] { return lang.Some(v) }

func someDuration(ms int) lang.Optional[time.Duration] {
	return lang.Some(time.Duration(ms) * time.Millisecond)
}
