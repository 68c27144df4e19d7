package services

import (
	"errors"
	"strings"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/orm"
	"gorm.io/gorm"
)

// AdminService covers the back office: the settings singleton, user listings
// and role management.
type AdminService struct {
	users    *repositories.UserRepository
	settings *repositories.SettingsRepository
}

func NewAdminService() *AdminService {
	return &AdminService{
		users:    repositories.NewUserRepository(),
		settings: repositories.NewSettingsRepository(),
	}
}

// Settings returns the decrypted settings row.
func (s *AdminService) Settings() (models.AdminSettings, error) {
	return s.settings.Get()
}

// SettingsInput is the back-office settings payload. Empty secret fields
// leave the stored secrets untouched so admins can edit the rest of the form
// without re-entering keys.
type SettingsInput struct {
	StripeSecretKey   string           `json:"stripe_secret_key"`
	PaypalSecretKey   string           `json:"paypal_secret_key"`
	BusinessEmail     string           `json:"business_email" validate:"nullable,email,max=255"`
	BusinessPhone     string           `json:"business_phone" validate:"nullable,max=50"`
	FomoEnabled       bool             `json:"fomo_enabled"`
	ChatWidgetEnabled bool             `json:"chat_widget_enabled"`
	Packages          []models.Package `json:"packages"`
	AddOns            []models.AddOn   `json:"add_ons"`
}

// UpdateSettings validates and writes the singleton.
func (s *AdminService) UpdateSettings(in SettingsInput) (models.AdminSettings, error) {
	for _, p := range in.Packages {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			return models.AdminSettings{}, Invalid("every package needs an id and a name")
		}
		if p.Price < 0 {
			return models.AdminSettings{}, Invalid("package prices must not be negative")
		}
	}
	for _, a := range in.AddOns {
		if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.Name) == "" {
			return models.AdminSettings{}, Invalid("every add-on needs an id and a name")
		}
		if a.Price < 0 {
			return models.AdminSettings{}, Invalid("add-on prices must not be negative")
		}
	}

	current, err := s.settings.Get()
	if err != nil {
		return models.AdminSettings{}, err
	}

	next := current
	next.BusinessEmail = in.BusinessEmail
	next.BusinessPhone = in.BusinessPhone
	next.FomoEnabled = in.FomoEnabled
	next.ChatWidgetEnabled = in.ChatWidgetEnabled
	next.SetPackageCatalog(in.Packages)
	next.SetAddOnCatalog(in.AddOns)
	if in.StripeSecretKey != "" {
		next.StripeSecretKey = in.StripeSecretKey
	}
	if in.PaypalSecretKey != "" {
		next.PaypalSecretKey = in.PaypalSecretKey
	}

	if err := s.settings.Upsert(&next); err != nil {
		return models.AdminSettings{}, err
	}
	return next, nil
}

// Users lists accounts with pagination.
func (s *AdminService) Users(page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, limit)
}

// Writers lists every writer account, for the assignment dropdown.
func (s *AdminService) Writers() ([]models.User, error) {
	return s.users.ByRole(models.RoleWriter)
}

// ChangeRole updates a user's role. An admin cannot demote their own account,
// which keeps at least the acting admin in place.
func (s *AdminService) ChangeRole(actorID, userID uint, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, Invalid("unknown role")
	}
	if actorID == userID && role != models.RoleAdmin {
		return models.User{}, Invalid("you cannot demote your own account")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	user.Role = role
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindUser loads one account.
func (s *AdminService) FindUser(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
