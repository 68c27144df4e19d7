package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careerloft/careerloft/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	handled  atomic.Int32
	attempts atomic.Int32
)

type countJob struct {
	Tag string
}

func (countJob) Handle() error {
	handled.Add(1)
	return nil
}

type doomedJob struct{}

func (doomedJob) Handle() error {
	attempts.Add(1)
	return errors.New("always fails")
}

func init() {
	queue.Register("queue_test.countJob", func() queue.Job { return &countJob{} })
	queue.Register("queue_test.doomedJob", func() queue.Job { return &doomedJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func TestDispatchRunsJob(t *testing.T) {
	before := handled.Load()
	require.NoError(t, queue.Dispatch(countJob{Tag: "one"}))

	deadline := time.After(2 * time.Second)
	for handled.Load() == before {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestExhaustedJobIsRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	require.NoError(t, queue.Dispatch(doomedJob{}))

	deadline := time.After(5 * time.Second)
	for len(queue.FailedJobs()) == before {
		select {
		case <-deadline:
			t.Fatal("failure never recorded")
		case <-time.After(50 * time.Millisecond):
		}
	}

	last := queue.FailedJobs()[len(queue.FailedJobs())-1]
	assert.EqualError(t, last.Err, "always fails")
	assert.Equal(t, 1, last.Attempts)
	assert.GreaterOrEqual(t, attempts.Load(), int32(1))
}

func TestDelayedDispatchOnMemoryDriver(t *testing.T) {
	before := handled.Load()
	queue.DispatchAfter(countJob{Tag: "later"}, 50*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	early := handled.Load()

	deadline := time.After(2 * time.Second)
	for handled.Load() == before {
		select {
		case <-deadline:
			t.Fatal("delayed job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
	assert.Equal(t, before, early, "job must not run before its delay")
}
