package resources

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/resource"
)

// OrderResource is the public shape of an order.
type OrderResource struct{ resource.Base }

func (r *OrderResource) ToArray(v interface{}) resource.Map {
	o, ok := v.(models.Order)
	if !ok {
		return resource.Map{}
	}
	return OrderMap(o)
}

// OrderMap is the plain-map form, shared with collection responses.
func OrderMap(o models.Order) resource.Map {
	return resource.Map{
		"id":                  o.ID,
		"client_id":           o.ClientID,
		"writer_id":           o.WriterID,
		"package_type":        o.PackageType,
		"add_on_ids":          o.AddOnIDs(),
		"status":              o.Status,
		"price":               o.Price,
		"payment_method":      o.PaymentMethod,
		"payment_status":      o.PaymentStatus,
		"target_job_url":      o.TargetJobURL,
		"revisions_remaining": o.RevisionsRemaining,
		"created_at":          o.CreatedAt,
		"updated_at":          o.UpdatedAt,
	}
}
