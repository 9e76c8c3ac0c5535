package main

import (
	"context"
	"os"
	"osu-dumper/internal/ingest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T) (chan os.Signal, *ingest.Gate, context.Context, context.CancelFunc, <-chan struct{}) {
	t.Helper()
	interrupts := make(chan os.Signal, 2)
	gate := ingest.NewGate()
	ctx, abort := context.WithCancel(context.Background())
	t.Cleanup(abort)

	done := make(chan struct{})
	go func() {
		defer close(done)
		watchInterrupts(ctx, interrupts, gate, abort, zerolog.Nop())
	}()
	return interrupts, gate, ctx, abort, done
}

func TestWatchInterruptsExitsWhenRunEnds(t *testing.T) {
	_, gate, _, abort, done := startWatcher(t)

	abort()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher still running after the run ended")
	}
	assert.False(t, gate.Cancelled())
}

func TestWatchInterruptsExitsAfterCancel(t *testing.T) {
	interrupts, gate, ctx, abort, done := startWatcher(t)

	interrupts <- os.Interrupt
	require.Eventually(t, gate.Cancelled, time.Second, time.Millisecond)
	assert.NoError(t, ctx.Err())

	abort()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher still running after the run ended")
	}
}

func TestWatchInterruptsSecondSignalAborts(t *testing.T) {
	interrupts, gate, ctx, _, done := startWatcher(t)

	interrupts <- os.Interrupt
	interrupts <- os.Interrupt
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not abort")
	}
	assert.True(t, gate.Cancelled())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
