package repositories

import (
	"errors"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
	"gorm.io/gorm"
)

// WidgetRepository handles per-user dashboard layouts.
type WidgetRepository struct{}

func NewWidgetRepository() *WidgetRepository {
	return &WidgetRepository{}
}

// ForUser returns the user's layout, or an empty layout when none is saved.
func (r *WidgetRepository) ForUser(userID uint) (models.WidgetLayout, error) {
	var layout models.WidgetLayout
	err := orm.DB().Model(&models.WidgetLayout{}).Where("user_id = ?", userID).First(&layout)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.WidgetLayout{UserID: userID}, nil
	}
	return layout, err
}

// Replace upserts the user's layout wholesale (PUT semantics).
func (r *WidgetRepository) Replace(layout *models.WidgetLayout) error {
	var existing models.WidgetLayout
	err := orm.DB().Model(&models.WidgetLayout{}).
		Where("user_id = ?", layout.UserID).First(&existing)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return orm.DB().Create(layout)
	case err != nil:
		return err
	}

	existing.Layout = layout.Layout
	if err := orm.DB().Save(&existing); err != nil {
		return err
	}
	*layout = existing
	return nil
}
