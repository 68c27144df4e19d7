package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/response"
)

// ApplicationController is the personal job tracker API.
type ApplicationController struct {
	applications *services.ApplicationService
}

func NewApplicationController() *ApplicationController {
	return &ApplicationController{applications: services.NewApplicationService()}
}

// Index lists the caller's tracked applications.
// GET /api/applications
func (c *ApplicationController) Index(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	apps, err := c.applications.List(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, apps)
}

// Create tracks a new application.
// POST /api/applications
func (c *ApplicationController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ApplicationInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	app, err := c.applications.Create(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, app)
}

// Update edits one of the caller's applications.
// PATCH /api/applications/{id}
func (c *ApplicationController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	appID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid application id")
		return
	}

	var in services.ApplicationInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	app, err := c.applications.Update(appID, userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, app)
}

// Delete removes one of the caller's applications.
// DELETE /api/applications/{id}
func (c *ApplicationController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	appID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid application id")
		return
	}
	if err := c.applications.Delete(appID, userID); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "application deleted"})
}
