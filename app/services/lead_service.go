package services

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/careerloft/careerloft/pkg/metrics"
	"github.com/careerloft/careerloft/pkg/orm"
	"github.com/careerloft/careerloft/pkg/queue"
	"gorm.io/gorm"
)

// followUpDelay is how long after capture a prospect gets the follow-up mail.
const followUpDelay = 24 * time.Hour

// LeadService captures and manages pre-purchase prospects.
type LeadService struct {
	leads *repositories.LeadRepository
	users *repositories.UserRepository
}

func NewLeadService() *LeadService {
	return &LeadService{
		leads: repositories.NewLeadRepository(),
		users: repositories.NewUserRepository(),
	}
}

// CaptureInput is the public lead-capture payload (chat widget, landing page).
type CaptureInput struct {
	Name   string `json:"name" validate:"nullable,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"nullable,max=50"`
	Source string `json:"source" validate:"nullable,max=100"`
}

// Capture records a prospect and schedules the follow-up email. Repeat
// submissions for the same email update the existing lead instead of
// producing duplicates.
func (s *LeadService) Capture(in CaptureInput) (models.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	source := in.Source
	if source == "" {
		source = "chat_widget"
	}

	existing, err := s.leads.FindByEmail(email)
	switch {
	case err == nil:
		if in.Name != "" {
			existing.Name = in.Name
		}
		if in.Phone != "" {
			existing.Phone = in.Phone
		}
		if uerr := s.leads.Update(&existing); uerr != nil {
			return models.Lead{}, uerr
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.Lead{}, err
	}

	lead := models.Lead{
		Name:   in.Name,
		Email:  email,
		Phone:  in.Phone,
		Source: source,
		Status: models.LeadNew,
	}
	if err := s.leads.Create(&lead); err != nil {
		return models.Lead{}, err
	}

	metrics.LeadsCaptured.WithLabelValues(source).Inc()
	event.Fire("lead.captured", lead)
	queue.DispatchAfter(jobs.LeadFollowUpJob{LeadID: lead.ID}, followUpDelay)

	return lead, nil
}

// ScanResult is what the public resume scanner returns.
type ScanResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

var scanSuggestions = []string{
	"Add more role-specific keywords from the job description.",
	"Quantify achievements with numbers instead of listing duties.",
	"Use a single-column layout so parsers keep your section order.",
	"Spell out acronyms at least once.",
	"Keep formatting simple: no tables, text boxes or images.",
}

// ScanResume records a scanner lead and produces an ATS-style score. The
// score is sampled uniformly from [55, 90]: low enough to motivate a rewrite,
// high enough to stay plausible.
func (s *LeadService) ScanResume(in CaptureInput) (models.Lead, ScanResult, error) {
	in.Source = "scanner"
	lead, err := s.Capture(in)
	if err != nil {
		return models.Lead{}, ScanResult{}, err
	}

	score := 55 + rand.Intn(36)
	lead.ATSScore = score
	if err := s.leads.Update(&lead); err != nil {
		return models.Lead{}, ScanResult{}, err
	}

	n := 2 + rand.Intn(2)
	picks := rand.Perm(len(scanSuggestions))[:n]
	suggestions := make([]string, 0, n)
	for _, i := range picks {
		suggestions = append(suggestions, scanSuggestions[i])
	}

	return lead, ScanResult{Score: score, Suggestions: suggestions}, nil
}

// List returns all leads with pagination, newest first.
func (s *LeadService) List(page, limit int) ([]models.Lead, orm.Pagination, error) {
	return s.leads.All(page, limit)
}

// ForWriter returns the leads assigned to writerID.
func (s *LeadService) ForWriter(writerID uint) ([]models.Lead, error) {
	return s.leads.ForWriter(writerID)
}

// UpdateInput is the back-office lead edit payload.
type UpdateInput struct {
	Status           string `json:"status"`
	AssignedWriterID *uint  `json:"assigned_writer_id"`
	Phone            string `json:"phone" validate:"nullable,max=50"`
	Name             string `json:"name" validate:"nullable,max=255"`
}

// Update edits funnel state and assignment. Admin only, gated at the route.
func (s *LeadService) Update(leadID uint, in UpdateInput) (models.Lead, error) {
	lead, err := s.leads.FindByID(leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Lead{}, ErrNotFound
		}
		return models.Lead{}, err
	}

	if in.Status != "" {
		status := models.LeadStatus(in.Status)
		if !status.Valid() {
			return models.Lead{}, Invalid("unknown lead status")
		}
		lead.Status = status
	}
	if in.AssignedWriterID != nil {
		writer, werr := s.users.FindByID(*in.AssignedWriterID)
		if werr != nil || writer.Role != models.RoleWriter {
			return models.Lead{}, Invalid("assigned user is not a writer")
		}
		lead.AssignedWriterID = in.AssignedWriterID
	}
	if in.Name != "" {
		lead.Name = in.Name
	}
	if in.Phone != "" {
		lead.Phone = in.Phone
	}

	if err := s.leads.Update(&lead); err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(leadID uint) error {
	lead, err := s.leads.FindByID(leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.leads.Delete(&lead)
}
