package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingStore struct {
	calls atomic.Int32
	err   error
}

func (s *countingStore) DeleteExpired(context.Context) (int64, error) {
	s.calls.Add(1)
	return 2, s.err
}

func TestSweeperRunsUntilCanceled(t *testing.T) {
	store := &countingStore{}
	sweeper := NewSessionSweeper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return store.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSweeperKeepsRunningAfterError(t *testing.T) {
	store := &countingStore{err: assert.AnError}
	sweeper := NewSessionSweeper(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Start(ctx)

	assert.Eventually(t, func() bool {
		return store.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}
