// Package schedule runs recurring maintenance tasks in-process. Entries
// are registered at boot through a fluent builder and dispatched by a
// single loop started with Start.
//
//	schedule.Daily().Name("lead_followup_sweep").WithoutOverlapping().Run(sweep)
//	schedule.Every(5).Minutes().Run(refreshCaches)
//	schedule.Cron("30 3 * * *").Name("nightly_report").Run(report)
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/careerloft/careerloft/pkg/logger"
)

// Task is a scheduled function.
type Task func()

type entry struct {
	name      string
	interval  time.Duration
	cronExpr  string
	task      Task
	noOverlap bool

	mu      sync.Mutex
	lastRun time.Time
	busy    bool
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Builder configures one entry before Run registers it.
type Builder struct {
	e *entry
}

// Every begins an interval-based entry: Every(5).Minutes().
func Every(n int) *Interval { return &Interval{n: n} }

func EveryMinute() *Builder { return Every(1).Minutes() }
func Hourly() *Builder      { return Every(1).Hours() }
func Daily() *Builder       { return Every(24).Hours() }
func Weekly() *Builder      { return Every(7).Days() }

// Cron begins an entry from a five-field expression
// (minute hour day-of-month month day-of-week).
func Cron(expr string) *Builder {
	return &Builder{e: &entry{cronExpr: expr}}
}

// Interval carries the count while the unit is chosen.
type Interval struct{ n int }

func (i *Interval) Seconds() *Builder { return interval(time.Duration(i.n) * time.Second) }
func (i *Interval) Minutes() *Builder { return interval(time.Duration(i.n) * time.Minute) }
func (i *Interval) Hours() *Builder   { return interval(time.Duration(i.n) * time.Hour) }
func (i *Interval) Days() *Builder    { return interval(time.Duration(i.n) * 24 * time.Hour) }

func interval(d time.Duration) *Builder {
	return &Builder{e: &entry{interval: d}}
}

// Name sets the identifier used in log lines and route:list style output.
func (b *Builder) Name(name string) *Builder {
	b.e.name = name
	return b
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (b *Builder) WithoutOverlapping() *Builder {
	b.e.noOverlap = true
	return b
}

// Run registers the entry. Dispatching begins once Start is called.
func (b *Builder) Run(fn Task) {
	b.e.task = fn
	regMu.Lock()
	if b.e.name == "" {
		b.e.name = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, b.e)
	regMu.Unlock()
}

// Start launches the dispatch loop. It checks once a second; cron entries
// fire at most once per matching minute.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			snapshot := make([]*entry, len(entries))
			copy(snapshot, entries)
			regMu.Unlock()

			for _, e := range snapshot {
				e.maybeRun(now)
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	if e.cronExpr != "" {
		// Fire once per matching minute.
		return cronMatches(e.cronExpr, now) &&
			(e.lastRun.IsZero() || now.Sub(e.lastRun) >= time.Minute)
	}
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func (e *entry) maybeRun(now time.Time) {
	e.mu.Lock()
	if !e.due(now) || (e.noOverlap && e.busy) {
		e.mu.Unlock()
		return
	}
	e.busy = true
	e.lastRun = now
	e.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("scheduled task panicked", "task", e.name, "panic", r)
			}
			e.mu.Lock()
			e.busy = false
			e.mu.Unlock()
		}()
		logger.Info("running scheduled task", "task", e.name)
		e.task()
	}()
}

// cronMatches evaluates a five-field expression against t. Fields accept
// "*", an exact number, "*/step" and "lo-hi" ranges.
func cronMatches(expr string, t time.Time) bool {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}
	values := []int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, field := range fields {
		if !fieldMatches(field, values[i]) {
			return false
		}
	}
	return true
}

func fieldMatches(field string, val int) bool {
	switch {
	case field == "*":
		return true
	case strings.HasPrefix(field, "*/"):
		step, err := strconv.Atoi(field[2:])
		return err == nil && step > 0 && val%step == 0
	case strings.Contains(field, "-"):
		lo, hi, ok := strings.Cut(field, "-")
		if !ok {
			return false
		}
		a, err1 := strconv.Atoi(lo)
		b, err2 := strconv.Atoi(hi)
		return err1 == nil && err2 == nil && val >= a && val <= b
	default:
		n, err := strconv.Atoi(field)
		return err == nil && n == val
	}
}

// List describes the registered entries for CLI display.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.cronExpr
		if freq == "" {
			freq = e.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.name, freq))
	}
	return out
}
