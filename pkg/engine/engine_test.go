package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/ataxxgo/ataxxgo/pkg/board"
	"github.com/ataxxgo/ataxxgo/pkg/engine"
	"github.com/ataxxgo/ataxxgo/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAndPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	assert.Contains(t, e.Position(), "x 0")

	e.Reset(ctx, "x5o/7/7/7/7/7/o5x o 3")
	assert.Equal(t, "x5o/7/7/7/7/7/o5x o 3", e.Position())
}

func TestMoveAppliesLegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	require.NoError(t, e.Move(ctx, "f2"))
	assert.Contains(t, e.Position(), " o ")
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	assert.Error(t, e.Move(ctx, "d4d5"))
}

func TestGoReportsBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	done := make(chan board.Move, 1)
	var infos int

	params := search.GoParams{MoveTime: lang.Some(200 * time.Millisecond)}
	err := e.Go(ctx, params,
		func(search.Info) { infos++ },
		func(best board.Move) { done <- best },
	)
	require.NoError(t, err)

	select {
	case best := <-done:
		assert.False(t, best.IsNull())
	case <-time.After(2 * time.Second):
		t.Fatal("search did not complete")
	}
	assert.Greater(t, infos, 0)
}

func TestGoRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Hash: 1}))

	params := search.GoParams{Infinite: true}
	done := make(chan board.Move, 1)
	require.NoError(t, e.Go(ctx, params, nil, func(m board.Move) { done <- m }))

	err := e.Go(ctx, params, nil, nil)
	assert.Error(t, err)

	e.Stop(ctx)
	<-done
}
