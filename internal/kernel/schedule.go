package kernel

import (
	"time"

	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/queue"
	"github.com/careerloft/careerloft/pkg/schedule"
)

// RegisterSchedules defines the recurring tasks. Call once at boot, then
// schedule.Start(ctx).
func RegisterSchedules() {
	// Safety net for leads whose delayed follow-up was lost to a restart:
	// anything still "new" a day after capture gets queued again.
	schedule.Daily().Name("lead_followup_sweep").WithoutOverlapping().Run(sweepStaleLeads)
}

func sweepStaleLeads() {
	leads, err := repositories.NewLeadRepository().ByStatus(models.LeadNew)
	if err != nil {
		logger.Warn("schedule: lead sweep failed", "error", err)
		return
	}
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lead := range leads {
		if lead.CreatedAt.After(cutoff) {
			continue
		}
		if err := queue.Dispatch(jobs.LeadFollowUpJob{LeadID: lead.ID}); err != nil {
			logger.Warn("schedule: follow-up not queued", "lead_id", lead.ID, "error", err)
		}
	}
}
