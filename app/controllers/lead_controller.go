package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/resources"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/collection"
	"github.com/careerloft/careerloft/pkg/response"
)

// LeadController covers public lead capture, the resume scanner and the
// back-office lead funnel.
type LeadController struct {
	leads *services.LeadService
}

func NewLeadController() *LeadController {
	return &LeadController{leads: services.NewLeadService()}
}

// Capture records a prospect from the chat widget or landing page. Public.
// POST /api/leads
func (c *LeadController) Capture(w http.ResponseWriter, r *http.Request) {
	var in services.CaptureInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	lead, err := c.leads.Capture(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	// The public response carries only the handle the widget needs to poll
	// its chat thread.
	response.Created(w, map[string]interface{}{"lead_id": lead.ID})
}

// Scan runs the public resume scanner: captures the lead and returns an
// ATS-style score with suggestions.
// POST /api/scanner
func (c *LeadController) Scan(w http.ResponseWriter, r *http.Request) {
	var in services.CaptureInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	lead, result, err := c.leads.ScanResume(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"lead_id":     lead.ID,
		"score":       result.Score,
		"suggestions": result.Suggestions,
	})
}

// Index lists all leads with pagination. Admin only.
// GET /api/admin/leads
func (c *LeadController) Index(w http.ResponseWriter, r *http.Request) {
	p, l := page(r)
	leads, pagination, err := c.leads.List(p, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, collection.Map(leads, resources.LeadMap), pagination)
}

// Mine lists the leads assigned to the authenticated writer.
// GET /api/leads/mine
func (c *LeadController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	leads, err := c.leads.ForWriter(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, collection.Map(leads, resources.LeadMap))
}

// Update edits funnel state and assignment. Admin only.
// PATCH /api/admin/leads/{id}
func (c *LeadController) Update(w http.ResponseWriter, r *http.Request) {
	leadID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid lead id")
		return
	}

	var in services.UpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	lead, err := c.leads.Update(leadID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.LeadMap(lead))
}

// Delete removes a lead. Admin only.
// DELETE /api/admin/leads/{id}
func (c *LeadController) Delete(w http.ResponseWriter, r *http.Request) {
	leadID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid lead id")
		return
	}
	if err := c.leads.Delete(leadID); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "lead deleted"})
}
