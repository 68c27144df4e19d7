package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Order is one resume-writing engagement. Status tracks the work, and
// PaymentStatus tracks the escrow independently. Price is whole dollars.
type Order struct {
	gorm.Model
	ClientID           uint          `gorm:"not null;index" json:"client_id"`
	WriterID           *uint         `gorm:"index" json:"writer_id"`
	PackageType        string        `gorm:"size:100;not null" json:"package_type"`
	AddOns             string        `gorm:"type:text" json:"-"` // JSON array of add-on ids
	Status             OrderStatus   `gorm:"size:20;not null;default:pending" json:"status"`
	Price              int           `gorm:"not null" json:"price"`
	PaymentMethod      PaymentMethod `gorm:"size:20" json:"payment_method"`
	PaymentStatus      PaymentStatus `gorm:"size:20;not null;default:pending" json:"payment_status"`
	TargetJobURL       string        `gorm:"size:2048" json:"target_job_url"`
	RevisionsRemaining int           `gorm:"not null;default:3" json:"revisions_remaining"`
}

// AddOnIDs decodes the stored add-on id list.
func (o *Order) AddOnIDs() []string {
	if o.AddOns == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(o.AddOns), &ids); err != nil {
		return nil
	}
	return ids
}

// SetAddOnIDs encodes the add-on id list for storage.
func (o *Order) SetAddOnIDs(ids []string) {
	if len(ids) == 0 {
		o.AddOns = ""
		return
	}
	raw, _ := json.Marshal(ids)
	o.AddOns = string(raw)
}

// AssignedTo reports whether writerID is the order's assigned writer.
func (o *Order) AssignedTo(writerID uint) bool {
	return o.WriterID != nil && *o.WriterID == writerID
}
