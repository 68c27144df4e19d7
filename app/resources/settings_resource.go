package resources

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/resource"
)

// SettingsResource is the back-office view of the settings singleton.
// Secrets never leave the server; the response only says whether one is set.
type SettingsResource struct{ resource.Base }

func (r *SettingsResource) ToArray(v interface{}) resource.Map {
	s, ok := v.(models.AdminSettings)
	if !ok {
		return resource.Map{}
	}
	return resource.Map{
		"business_email":      s.BusinessEmail,
		"business_phone":      s.BusinessPhone,
		"fomo_enabled":        s.FomoEnabled,
		"chat_widget_enabled": s.ChatWidgetEnabled,
		"packages":            s.PackageCatalog(),
		"add_ons":             s.AddOnCatalog(),
		"has_stripe_key":      s.StripeSecretKey != "",
		"has_paypal_key":      s.PaypalSecretKey != "",
		"updated_at":          s.UpdatedAt,
	}
}

// PublicSettingsMap is the unauthenticated storefront view: the catalogue
// plus the widget toggles, nothing operational.
func PublicSettingsMap(s models.AdminSettings) resource.Map {
	return resource.Map{
		"packages":            s.PackageCatalog(),
		"add_ons":             s.AddOnCatalog(),
		"fomo_enabled":        s.FomoEnabled,
		"chat_widget_enabled": s.ChatWidgetEnabled,
		"business_email":      s.BusinessEmail,
	}
}
