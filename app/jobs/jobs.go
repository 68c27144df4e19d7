// Package jobs defines the background jobs pushed through pkg/queue.
// RegisterAll must run at boot so the workers can deserialize each type.
package jobs

import "github.com/careerloft/careerloft/pkg/queue"

// RegisterAll registers every job type with the queue registry.
func RegisterAll() {
	queue.Register("jobs.WelcomeEmailJob", func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register("jobs.LeadFollowUpJob", func() queue.Job { return &LeadFollowUpJob{} })
	queue.Register("jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
}
