package stress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/objectmodel/internal/stress"
	"github.com/marcodamonte/objectmodel/smartarray"
)

func filled(size, v int) *smartarray.SmartArray[int] {
	a := smartarray.NewSized[int](size, "SharedData")
	a.FillStep(v, 0)
	return a
}

// ── Mixed readers and writers ────────────────────────────────────────────────

func TestMixedTasksNoTornReads(t *testing.T) {
	t.Parallel()

	const size = 16
	arr := filled(size, 20)
	pool := stress.New(stress.Config{
		Workers:         8,
		QueueSize:       64,
		ShutdownTimeout: 5 * time.Second,
	}, arr)

	const total = 500
	writes := 0
	for i := 0; i < total; i++ {
		task := stress.Task{Kind: stress.Read}
		if i%5 == 0 {
			task = stress.Task{Kind: stress.Write, Index: i % size, Value: i}
			writes++
		}
		require.NoError(t, pool.Submit(context.Background(), task))
	}
	require.NoError(t, pool.Shutdown())

	m := pool.Metrics()
	assert.Equal(t, int64(total), m.Submitted)
	assert.Equal(t, int64(writes), m.Writes)
	assert.Equal(t, int64(total-writes), m.Reads)
	assert.Zero(t, m.Torn)
	assert.Zero(t, m.Failed)
	assert.Equal(t, size, arr.Len())
}

// ── Failures ─────────────────────────────────────────────────────────────────

func TestOutOfRangeWriteCountsAsFailure(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	pool := stress.New(stress.Config{Workers: 1, QueueSize: 1, Logger: logger}, filled(4, 0))

	require.NoError(t, pool.Submit(context.Background(), stress.Task{Kind: stress.Write, Index: 4, Value: 1}))
	require.NoError(t, pool.Shutdown())

	assert.Equal(t, int64(1), pool.Metrics().Failed)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	err, ok := entry.Data["error"].(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, smartarray.ErrIndexOutOfRange)
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestSubmitAfterShutdown(t *testing.T) {
	t.Parallel()

	pool := stress.New(stress.Config{Workers: 1, ShutdownTimeout: time.Second}, filled(2, 0))
	require.NoError(t, pool.Shutdown())

	err := pool.Submit(context.Background(), stress.Task{Kind: stress.Read})
	assert.True(t, errors.Is(err, stress.ErrPoolClosed))
	assert.Equal(t, int64(1), pool.Metrics().Dropped)
}

func TestShutdownIdempotent(t *testing.T) {
	t.Parallel()

	pool := stress.New(stress.Config{Workers: 2, ShutdownTimeout: time.Second}, filled(2, 0))
	for i := 0; i < 3; i++ {
		require.NoErrorf(t, pool.Shutdown(), "Shutdown call %d", i+1)
	}
}

// TestSubmitRespectsCallerContext parks the only worker on a write that waits
// for an open read pass, so the next Submit on the unbuffered queue blocks.
func TestSubmitRespectsCallerContext(t *testing.T) {
	t.Parallel()

	arr := filled(2, 0)
	pool := stress.New(stress.Config{Workers: 1, QueueSize: 0, ShutdownTimeout: time.Second}, arr)

	// Hold a read pass open so the worker's write blocks on the lock.
	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		for range arr.Values() {
			close(started)
			<-release
			break
		}
	}()
	<-started

	require.NoError(t, pool.Submit(context.Background(), stress.Task{Kind: stress.Write, Index: 0, Value: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, stress.Task{Kind: stress.Read})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, pool.Shutdown())
	assert.Equal(t, int64(1), pool.Metrics().Writes)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "read", stress.Read.String())
	assert.Equal(t, "write", stress.Write.String())
	assert.Equal(t, "Kind(9)", stress.Kind(9).String())
}
