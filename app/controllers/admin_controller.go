package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/resources"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/collection"
	"github.com/careerloft/careerloft/pkg/queue"
	"github.com/careerloft/careerloft/pkg/resource"
	"github.com/careerloft/careerloft/pkg/response"
)

// AdminController covers the back office: settings, user management and the
// failed-job inspector.
type AdminController struct {
	admin *services.AdminService
}

func NewAdminController() *AdminController {
	return &AdminController{admin: services.NewAdminService()}
}

// PublicSettings returns the storefront view of the settings: the package
// catalogue and widget toggles. Public.
// GET /api/settings
func (c *AdminController) PublicSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.admin.Settings()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.PublicSettingsMap(settings))
}

// Settings returns the full back-office settings view. Admin only.
// GET /api/admin/settings
func (c *AdminController) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.admin.Settings()
	if err != nil {
		fail(w, r, err)
		return
	}
	resource.New(&resources.SettingsResource{}, settings).Respond(w)
}

// UpdateSettings writes the settings singleton. Admin only.
// PUT /api/admin/settings
func (c *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in services.SettingsInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	settings, err := c.admin.UpdateSettings(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	resource.New(&resources.SettingsResource{}, settings).Respond(w)
}

// Users lists accounts with pagination. Admin only.
// GET /api/admin/users
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	p, l := page(r)
	users, pagination, err := c.admin.Users(p, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, collection.Map(users, resources.UserMap), pagination)
}

// Writers lists every writer account, for the assignment dropdown. Admin only.
// GET /api/admin/writers
func (c *AdminController) Writers(w http.ResponseWriter, r *http.Request) {
	writers, err := c.admin.Writers()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, collection.Map(writers, resources.UserMap))
}

type roleInput struct {
	Role string `json:"role" validate:"required"`
}

// ChangeRole updates a user's role. Admin only; self-demotion is rejected.
// PATCH /api/admin/users/{id}/role
func (c *AdminController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	userID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid user id")
		return
	}

	var in roleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.admin.ChangeRole(actorID, userID, models.Role(in.Role))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.UserMap(user))
}

// FailedJobs lists background jobs that exhausted their retries. Admin only.
// GET /api/admin/failed-jobs
func (c *AdminController) FailedJobs(w http.ResponseWriter, r *http.Request) {
	failed := queue.FailedJobs()
	out := make([]map[string]interface{}, 0, len(failed))
	for _, f := range failed {
		entry := map[string]interface{}{
			"job":       f.Job,
			"failed_at": f.FailedAt,
			"attempts":  f.Attempts,
		}
		if f.Err != nil {
			entry["error"] = f.Err.Error()
		}
		out = append(out, entry)
	}
	response.Success(w, out)
}
