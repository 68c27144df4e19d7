package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// ApplicationRepository handles the per-user job tracker.
type ApplicationRepository struct{}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

// FindByID looks up a tracked application by primary key.
func (r *ApplicationRepository) FindByID(id uint) (models.JobApplication, error) {
	var app models.JobApplication
	err := orm.DB().Model(&models.JobApplication{}).Where("id = ?", id).First(&app)
	return app, err
}

// Create persists a new tracked application.
func (r *ApplicationRepository) Create(app *models.JobApplication) error {
	return orm.DB().Create(app)
}

// Update persists changes to an existing tracked application.
func (r *ApplicationRepository) Update(app *models.JobApplication) error {
	return orm.DB().Save(app)
}

// Delete removes a tracked application.
func (r *ApplicationRepository) Delete(app *models.JobApplication) error {
	return orm.DB().Delete(app)
}

// ForUser returns every application tracked by userID, newest first.
func (r *ApplicationRepository) ForUser(userID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := orm.DB().Model(&models.JobApplication{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Get(&apps)
	return apps, err
}
