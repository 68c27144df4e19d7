package services

import (
	"strings"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
)

// defaultWidgets is what a user sees before saving any layout of their own.
var defaultWidgets = []models.Widget{
	{ID: "orders", Type: "orders", Title: "My Orders", X: 0, Y: 0, W: 6, H: 4, Visible: true},
	{ID: "messages", Type: "messages", Title: "Messages", X: 6, Y: 0, W: 6, H: 4, Visible: true},
	{ID: "tracker", Type: "job_tracker", Title: "Job Tracker", X: 0, Y: 4, W: 12, H: 4, Visible: true},
}

// WidgetService manages per-user dashboard layouts.
type WidgetService struct {
	widgets *repositories.WidgetRepository
}

func NewWidgetService() *WidgetService {
	return &WidgetService{widgets: repositories.NewWidgetRepository()}
}

// Layout returns the user's widgets, falling back to the default arrangement
// when they have never saved one.
func (s *WidgetService) Layout(userID uint) ([]models.Widget, error) {
	layout, err := s.widgets.ForUser(userID)
	if err != nil {
		return nil, err
	}
	ws := layout.Widgets()
	if len(ws) == 0 {
		return defaultWidgets, nil
	}
	return ws, nil
}

// SaveLayout replaces the user's layout wholesale.
func (s *WidgetService) SaveLayout(userID uint, widgets []models.Widget) ([]models.Widget, error) {
	for _, w := range widgets {
		if strings.TrimSpace(w.ID) == "" {
			return nil, Invalid("every widget needs an id")
		}
		if w.W <= 0 || w.H <= 0 {
			return nil, Invalid("widget dimensions must be positive")
		}
	}

	layout := models.WidgetLayout{UserID: userID}
	layout.SetWidgets(widgets)
	if err := s.widgets.Replace(&layout); err != nil {
		return nil, err
	}
	return layout.Widgets(), nil
}
