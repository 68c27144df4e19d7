package jobs

import (
	"errors"
	"fmt"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/mail"
	"gorm.io/gorm"
)

// LeadFollowUpJob emails a captured lead some time after first contact and
// advances the funnel state. Dispatched with queue.DispatchAfter.
type LeadFollowUpJob struct {
	LeadID uint `json:"lead_id"`
}

func (j LeadFollowUpJob) Handle() error {
	repo := repositories.NewLeadRepository()
	lead, err := repo.FindByID(j.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("lead follow-up: load lead %d: %w", j.LeadID, err)
	}

	// Converted or unsubscribed leads are out of the funnel.
	if lead.Status == models.LeadConverted || lead.Status == models.LeadUnsubscribed {
		return nil
	}
	if lead.Email == "" {
		return nil
	}

	err = mail.To(lead.Email).
		Subject("Still thinking about your resume?").
		Body("<p>Your scan results are waiting. A professional rewrite usually lifts ATS scores past 90.</p>").
		Send()
	if err != nil {
		return err
	}

	lead.Status = models.LeadFollowedUp
	return repo.Update(&lead)
}
