package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func newTestApp(refresher Refresher) *App {
	return &App{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), refresher: refresher}
}

func TestRefreshLoopWarmsAndTicks(t *testing.T) {
	refresher := &countingRefresher{}
	app := newTestApp(refresher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.refreshLoop(ctx, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop")
	}
}

func TestRefreshLoopDisabled(t *testing.T) {
	refresher := &countingRefresher{}
	app := newTestApp(refresher)

	app.refreshLoop(context.Background(), 0)
	require.Zero(t, refresher.calls.Load())
}

func TestRefreshFailureKeepsLooping(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("upstream down")}
	app := newTestApp(refresher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.refreshLoop(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
