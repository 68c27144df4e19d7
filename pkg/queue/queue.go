// Package queue runs background jobs: follow-up emails, welcome mail,
// order notifications. A job is any type with a Handle method; it is
// serialized to JSON, pushed through a driver and picked up by a worker.
//
//	queue.Register("jobs.WelcomeEmailJob", func() queue.Job { return &jobs.WelcomeEmailJob{} })
//	queue.Dispatch(jobs.WelcomeEmailJob{UserID: user.ID})
//	queue.DispatchAfter(jobs.LeadFollowUpJob{LeadID: lead.ID}, 24*time.Hour)
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/metrics"
)

// Job is a unit of background work.
type Job interface {
	Handle() error
}

// Driver moves serialized jobs in and out of a backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// DelayedDriver is implemented by drivers that can hold a job back until a
// due time. Drivers without it fall back to an in-process timer.
type DelayedDriver interface {
	PushDelayed(payload []byte, delay time.Duration) error
}

// FailedJob is the in-memory record of a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// envelope wraps a job payload with the registered type name so workers
// know which factory to use.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

var (
	mu        sync.RWMutex
	driver    Driver = NewMemoryDriver()
	factories        = map[string]func() Job{}
	failed    []FailedJob
	maxRetry  = 3
)

// Register binds a type name to a factory producing a pointer the payload
// can be unmarshaled into. Names must match what Dispatch derives via %T,
// e.g. "jobs.WelcomeEmailJob".
func Register(name string, factory func() Job) {
	mu.Lock()
	factories[name] = factory
	mu.Unlock()
}

// SetDriver swaps the backend. Call before StartWorkers.
func SetDriver(d Driver) {
	mu.Lock()
	driver = d
	mu.Unlock()
}

// SetMaxRetry changes how many attempts a job gets before it is recorded
// as failed.
func SetMaxRetry(n int) {
	mu.Lock()
	maxRetry = n
	mu.Unlock()
}

// Dispatch serializes the job and pushes it for immediate processing.
func Dispatch(job Job) error {
	payload, err := pack(job)
	if err != nil {
		return err
	}
	return currentDriver().Push(payload)
}

// DispatchAfter schedules the job to run once the delay has passed. With a
// delay-capable driver the schedule survives restarts; otherwise a timer
// goroutine holds the job, and the daily sweep re-queues anything lost.
func DispatchAfter(job Job, delay time.Duration) {
	payload, err := pack(job)
	if err != nil {
		logger.Error("queue: delayed dispatch", "error", err)
		return
	}

	if dd, ok := currentDriver().(DelayedDriver); ok {
		if err := dd.PushDelayed(payload, delay); err != nil {
			logger.Error("queue: delayed dispatch", "error", err)
		}
		return
	}

	go func() {
		time.Sleep(delay)
		if err := currentDriver().Push(payload); err != nil {
			logger.Error("queue: delayed dispatch", "error", err)
		}
	}()
}

func pack(job Job) ([]byte, error) {
	name := fmt.Sprintf("%T", job)
	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal %s: %w", name, err)
	}
	return json.Marshal(envelope{Type: name, Payload: body})
}

func currentDriver() Driver {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// StartWorkers runs n workers until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go worker(ctx)
	}
	logger.Info("queue workers started", "count", n)
}

func worker(ctx context.Context) {
	for ctx.Err() == nil {
		raw, err := currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw != nil {
			handle(raw)
		}
	}
}

func handle(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	mu.RLock()
	factory, known := factories[env.Type]
	retries := maxRetry
	mu.RUnlock()

	if !known {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: bad payload", "type", env.Type, "error", err)
		return
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		lastErr = job.Handle()
		if lastErr == nil {
			metrics.RecordQueueJob(env.Type, "success", start)
			logger.Info("job processed", "type", env.Type)
			return
		}
		logger.Warn("job attempt failed",
			"type", env.Type, "attempt", attempt, "error", lastErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	metrics.RecordQueueJob(env.Type, "failed", start)
	recordFailure(job, env.Type, lastErr, retries)
	logger.Error("job exhausted retries", "type", env.Type, "error", lastErr)
}

// FailedJobs returns a copy of the in-memory failure list.
func FailedJobs() []FailedJob {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]FailedJob, len(failed))
	copy(out, failed)
	return out
}
