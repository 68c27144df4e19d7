package resources

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/resource"
)

// LeadResource is the back-office shape of a captured prospect.
type LeadResource struct{ resource.Base }

func (r *LeadResource) ToArray(v interface{}) resource.Map {
	l, ok := v.(models.Lead)
	if !ok {
		return resource.Map{}
	}
	return LeadMap(l)
}

// LeadMap is the plain-map form, shared with collection responses.
func LeadMap(l models.Lead) resource.Map {
	return resource.Map{
		"id":                 l.ID,
		"name":               l.Name,
		"email":              l.Email,
		"phone":              l.Phone,
		"source":             l.Source,
		"status":             l.Status,
		"assigned_writer_id": l.AssignedWriterID,
		"ats_score":          l.ATSScore,
		"created_at":         l.CreatedAt,
	}
}
