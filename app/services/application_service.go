package services

import (
	"errors"
	"strings"
	"time"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"gorm.io/gorm"
)

// ApplicationService is the personal job tracker. Rows are strictly private
// to their owner; not even admins browse them.
type ApplicationService struct {
	applications *repositories.ApplicationRepository
}

func NewApplicationService() *ApplicationService {
	return &ApplicationService{applications: repositories.NewApplicationRepository()}
}

// ApplicationInput is the create/update payload.
type ApplicationInput struct {
	Company  string `json:"company" validate:"required,max=255"`
	Position string `json:"position" validate:"required,max=255"`
	JobURL   string `json:"job_url" validate:"nullable,max=2048"`
	Status   string `json:"status"`
	Notes    string `json:"notes" validate:"nullable,max=10000"`
}

// List returns the user's tracked applications, newest first.
func (s *ApplicationService) List(userID uint) ([]models.JobApplication, error) {
	return s.applications.ForUser(userID)
}

// Create tracks a new application for userID.
func (s *ApplicationService) Create(userID uint, in ApplicationInput) (models.JobApplication, error) {
	status := models.ApplicationStatus(in.Status)
	if in.Status == "" {
		status = models.ApplicationSaved
	}
	if !status.Valid() {
		return models.JobApplication{}, Invalid("unknown application status")
	}

	app := models.JobApplication{
		UserID:   userID,
		Company:  strings.TrimSpace(in.Company),
		Position: strings.TrimSpace(in.Position),
		JobURL:   in.JobURL,
		Status:   status,
		Notes:    in.Notes,
	}
	if status == models.ApplicationApplied {
		now := time.Now()
		app.AppliedAt = &now
	}

	if err := s.applications.Create(&app); err != nil {
		return models.JobApplication{}, err
	}
	return app, nil
}

// Update edits one of the user's applications. Moving into the applied state
// stamps AppliedAt the first time.
func (s *ApplicationService) Update(appID, userID uint, in ApplicationInput) (models.JobApplication, error) {
	app, err := s.find(appID, userID)
	if err != nil {
		return models.JobApplication{}, err
	}

	if in.Status != "" {
		status := models.ApplicationStatus(in.Status)
		if !status.Valid() {
			return models.JobApplication{}, Invalid("unknown application status")
		}
		if status == models.ApplicationApplied && app.AppliedAt == nil {
			now := time.Now()
			app.AppliedAt = &now
		}
		app.Status = status
	}
	if in.Company != "" {
		app.Company = strings.TrimSpace(in.Company)
	}
	if in.Position != "" {
		app.Position = strings.TrimSpace(in.Position)
	}
	if in.JobURL != "" {
		app.JobURL = in.JobURL
	}
	if in.Notes != "" {
		app.Notes = in.Notes
	}

	if err := s.applications.Update(&app); err != nil {
		return models.JobApplication{}, err
	}
	return app, nil
}

// Delete removes one of the user's applications.
func (s *ApplicationService) Delete(appID, userID uint) error {
	app, err := s.find(appID, userID)
	if err != nil {
		return err
	}
	return s.applications.Delete(&app)
}

func (s *ApplicationService) find(appID, userID uint) (models.JobApplication, error) {
	app, err := s.applications.FindByID(appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.JobApplication{}, ErrNotFound
		}
		return models.JobApplication{}, err
	}
	if app.UserID != userID {
		// Hide existence of other users' rows.
		return models.JobApplication{}, ErrNotFound
	}
	return app, nil
}
