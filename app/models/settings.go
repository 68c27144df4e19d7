package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Package is one purchasable service tier from the admin-managed catalogue.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"` // whole dollars
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// AddOn is an optional extra purchasable alongside a package.
type AddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// AdminSettings is the singleton back-office configuration row.
// Gateway secrets are stored AES-GCM encrypted; see the settings repository.
type AdminSettings struct {
	gorm.Model
	StripeSecretKey   string `gorm:"size:1024" json:"-"` // encrypted at rest
	PaypalSecretKey   string `gorm:"size:1024" json:"-"` // encrypted at rest
	BusinessEmail     string `gorm:"size:255" json:"business_email"`
	BusinessPhone     string `gorm:"size:50" json:"business_phone"`
	FomoEnabled       bool   `gorm:"not null;default:false" json:"fomo_enabled"`
	ChatWidgetEnabled bool   `gorm:"not null;default:true" json:"chat_widget_enabled"`
	Packages          string `gorm:"type:text" json:"-"` // JSON []Package
	AddOns            string `gorm:"type:text" json:"-"` // JSON []AddOn
}

// PackageCatalog decodes the stored package list.
func (s *AdminSettings) PackageCatalog() []Package {
	var pkgs []Package
	if s.Packages != "" {
		_ = json.Unmarshal([]byte(s.Packages), &pkgs)
	}
	return pkgs
}

// SetPackageCatalog encodes pkgs for storage.
func (s *AdminSettings) SetPackageCatalog(pkgs []Package) {
	raw, _ := json.Marshal(pkgs)
	s.Packages = string(raw)
}

// AddOnCatalog decodes the stored add-on list.
func (s *AdminSettings) AddOnCatalog() []AddOn {
	var addons []AddOn
	if s.AddOns != "" {
		_ = json.Unmarshal([]byte(s.AddOns), &addons)
	}
	return addons
}

// SetAddOnCatalog encodes addons for storage.
func (s *AdminSettings) SetAddOnCatalog(addons []AddOn) {
	raw, _ := json.Marshal(addons)
	s.AddOns = string(raw)
}
