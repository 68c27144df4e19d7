package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// LeadRepository handles database operations for Lead.
type LeadRepository struct{}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

// FindByID looks up a lead by primary key.
func (r *LeadRepository) FindByID(id uint) (models.Lead, error) {
	var lead models.Lead
	err := orm.DB().Model(&models.Lead{}).Where("id = ?", id).First(&lead)
	return lead, err
}

// FindByEmail returns the most recent lead captured for email, if any.
func (r *LeadRepository) FindByEmail(email string) (models.Lead, error) {
	var lead models.Lead
	err := orm.DB().Model(&models.Lead{}).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&lead)
	return lead, err
}

// Create persists a new lead.
func (r *LeadRepository) Create(lead *models.Lead) error {
	return orm.DB().Create(lead)
}

// Update persists changes to an existing lead.
func (r *LeadRepository) Update(lead *models.Lead) error {
	return orm.DB().Save(lead)
}

// Delete removes a lead row.
func (r *LeadRepository) Delete(lead *models.Lead) error {
	return orm.DB().Delete(lead)
}

// All returns all leads with pagination, newest first.
func (r *LeadRepository) All(page, limit int) ([]models.Lead, orm.Pagination, error) {
	var leads []models.Lead
	pagination, err := orm.DB().Model(&models.Lead{}).
		Order("created_at DESC").
		GetWithPagination(&leads, page, limit)
	return leads, pagination, err
}

// ForWriter returns leads assigned to writerID.
func (r *LeadRepository) ForWriter(writerID uint) ([]models.Lead, error) {
	var leads []models.Lead
	err := orm.DB().Model(&models.Lead{}).
		Where("assigned_writer_id = ?", writerID).
		Order("created_at DESC").
		Get(&leads)
	return leads, err
}

// ByStatus returns every lead in the given funnel state.
func (r *LeadRepository) ByStatus(status models.LeadStatus) ([]models.Lead, error) {
	var leads []models.Lead
	err := orm.DB().Model(&models.Lead{}).Where("status = ?", status).Get(&leads)
	return leads, err
}
