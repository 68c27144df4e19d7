package seeders

import (
	"errors"

	"github.com/careerloft/careerloft/app/models"
	"gorm.io/gorm"
)

func init() {
	Register(&SettingsSeeder{})
}

// SettingsSeeder writes the settings singleton with the default package
// catalogue. Skipped when a row already exists so admin edits survive
// re-seeding.
type SettingsSeeder struct{}

func (s *SettingsSeeder) Name() string { return "admin_settings" }

func (s *SettingsSeeder) Run(db *gorm.DB) error {
	var existing models.AdminSettings
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	settings := models.AdminSettings{
		BusinessEmail:     "hello@careerloft.app",
		ChatWidgetEnabled: true,
	}
	settings.SetPackageCatalog([]models.Package{
		{
			ID: "starter", Name: "Starter Resume", Price: 199,
			Description: "Professionally rewritten resume, ATS optimised.",
			Features:    []string{"1 resume", "3 revisions", "5-day turnaround"},
		},
		{
			ID: "professional", Name: "Professional", Price: 299,
			Description: "Resume and cover letter for mid-career moves.",
			Features:    []string{"1 resume", "1 cover letter", "3 revisions", "3-day turnaround"},
		},
		{
			ID: "executive", Name: "Executive", Price: 449,
			Description: "Full package for senior and executive roles.",
			Features:    []string{"1 resume", "1 cover letter", "LinkedIn rewrite", "3 revisions", "48h turnaround"},
		},
	})
	settings.SetAddOnCatalog([]models.AddOn{
		{ID: "cover_letter", Name: "Cover Letter", Price: 49},
		{ID: "linkedin", Name: "LinkedIn Optimisation", Price: 125},
		{ID: "rush", Name: "Rush Delivery (48h)", Price: 75},
	})

	return db.Create(&settings).Error
}
