package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{Type: "visitor.upsert", Payload: "device-1"}))

	select {
	case job := <-done:
		assert.Equal(t, "visitor.upsert", job.Type)
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.TryEnqueue(Job{Type: "noop"}))
}

func TestTryEnqueueDoesNotBlockWhenFull(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer func() {
		close(release)
		q.Stop()
	}()

	var full bool
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := q.TryEnqueue(Job{Type: "block"}); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	assert.True(t, full, "expected the buffer to fill up without blocking")
}

func TestQueueRetriesThenDrops(t *testing.T) {
	var attempts int32
	dropped := make(chan error, 1)
	q := NewQueue("retry", func(context.Context, Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("datastore unavailable")
	}, QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
		OnDrop: func(_ Job, err error) {
			dropped <- err
		},
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{Type: "visitor.upsert"}))

	select {
	case err := <-dropped:
		assert.EqualError(t, err, "datastore unavailable")
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	case <-time.After(2 * time.Second):
		t.Fatal("job was not dropped")
	}
}

func TestQueueRecoversFromPanickingHandler(t *testing.T) {
	dropped := make(chan error, 1)
	q := NewQueue("panic", func(context.Context, Job) error {
		panic("boom")
	}, QueueConfig{OnDrop: func(_ Job, err error) { dropped <- err }})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{Type: "panic"}))
	select {
	case err := <-dropped:
		assert.Contains(t, err.Error(), "boom")
	case <-time.After(2 * time.Second):
		t.Fatal("panicking job was not dropped")
	}
}

func TestQueueDropsRetryWhenBufferIsFull(t *testing.T) {
	failed := make(chan struct{}, 1)
	blocking := make(chan struct{})
	release := make(chan struct{})
	dropped := make(chan Job, 4)

	q := NewQueue("saturated", func(ctx context.Context, job Job) error {
		switch job.Type {
		case "fail":
			failed <- struct{}{}
			return errors.New("directory unavailable")
		case "block":
			close(blocking)
			select {
			case <-release:
			case <-ctx.Done():
			}
		}
		return nil
	}, QueueConfig{
		Workers:    1,
		BufferSize: 1,
		MaxRetries: 3,
		RetryDelay: 200 * time.Millisecond,
		OnDrop:     func(job Job, _ error) { dropped <- job },
	})
	q.Start(context.Background())

	require.NoError(t, q.TryEnqueue(Job{Type: "fail"}))
	<-failed
	require.NoError(t, q.TryEnqueue(Job{Type: "block"}))
	<-blocking
	require.NoError(t, q.TryEnqueue(Job{Type: "filler"}))

	select {
	case job := <-dropped:
		assert.Equal(t, "fail", job.Type)
		assert.Equal(t, 1, job.Attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("retry was not reported as dropped")
	}

	close(release)
	q.Stop()
}
