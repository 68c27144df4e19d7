package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/response"
)

// WidgetController manages the caller's dashboard layout.
type WidgetController struct {
	widgets *services.WidgetService
}

func NewWidgetController() *WidgetController {
	return &WidgetController{widgets: services.NewWidgetService()}
}

// Layout returns the caller's widgets, or the defaults.
// GET /api/widgets
func (c *WidgetController) Layout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	widgets, err := c.widgets.Layout(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, widgets)
}

type layoutInput struct {
	Widgets []models.Widget `json:"widgets"`
}

// SaveLayout replaces the caller's layout wholesale.
// PUT /api/widgets
func (c *WidgetController) SaveLayout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in layoutInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	widgets, err := c.widgets.SaveLayout(userID, in.Widgets)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, widgets)
}
