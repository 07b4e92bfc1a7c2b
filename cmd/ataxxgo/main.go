// ataxxgo is an Ataxx engine speaking the Universal Ataxx Interface (UAI)
// protocol over stdin/stdout.
package main

import (
	"context"
	"flag"

	"github.com/ataxxgo/ataxxgo/pkg/engine"
	"github.com/ataxxgo/ataxxgo/pkg/engine/uai"
	"github.com/seekerror/logw"
)

var (
	depth   = flag.Uint("depth", 0, "Search depth limit (zero if no limit)")
	hash    = flag.Uint("hash", 16, "Transposition table size in MB")
	threads = flag.Uint("threads", 1, "Perft worker pool size")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	e := engine.New(ctx, "ataxxgo", "ataxxgo contributors",
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Threads: *threads}),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uai.ProtocolName:
		driver, out := uai.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		logw.Exitf(ctx, "Protocol not supported: expected %q", uai.ProtocolName)
	}
}
