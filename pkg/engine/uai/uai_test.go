package uai_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ataxxgo/ataxxgo/pkg/engine"
	"github.com/ataxxgo/ataxxgo/pkg/engine/uai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshake(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	in := make(chan string, 10)
	_, out := uai.NewDriver(ctx, e, in)

	var lines []string
	for i := 0; i < 3; i++ {
		select {
		case l := <-out:
			lines = append(lines, l)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for handshake output")
		}
	}

	assert.Contains(t, lines[0], "id name")
	assert.Contains(t, lines[1], "id author")

	in <- "quit"
}

func TestGoEmitsBestmove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	in := make(chan string, 10)
	driver, out := uai.NewDriver(ctx, e, in)

	var lastInfo string
	drainUntil := func(prefix string, timeout time.Duration) string {
		deadline := time.After(timeout)
		for {
			select {
			case l := <-out:
				if strings.HasPrefix(l, "info") {
					lastInfo = l
				}
				if strings.HasPrefix(l, prefix) {
					return l
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", prefix)
			}
		}
	}

	in <- "position startpos"
	in <- "go movetime 200"

	line := drainUntil("bestmove", 2*time.Second)
	assert.Contains(t, line, "bestmove")
	require.NotEmpty(t, lastInfo, "expected at least one info line before bestmove")
	assert.Contains(t, lastInfo, "time ")

	in <- "quit"
	select {
	case <-driver.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close")
	}
}

func TestSetOptionHash(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	in := make(chan string, 10)
	_, out := uai.NewDriver(ctx, e, in)

	// Drain the handshake.
	for i := 0; i < 3; i++ {
		<-out
	}

	in <- "setoption name Hash value 4"
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, uint(4), e.Options().Hash)
	in <- "quit"
}
