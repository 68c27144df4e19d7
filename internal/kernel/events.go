package kernel

import (
	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/queue"
)

// RegisterListeners wires the domain events to their side effects. Called
// once at boot, after the queue driver is configured.
func RegisterListeners() {
	event.Listen("user.registered", func(payload interface{}) {
		user, ok := payload.(models.User)
		if !ok {
			return
		}
		if err := queue.Dispatch(jobs.WelcomeEmailJob{UserID: user.ID}); err != nil {
			logger.Warn("events: welcome email not queued", "user_id", user.ID, "error", err)
		}
	})

	event.Listen("lead.captured", func(payload interface{}) {
		if lead, ok := payload.(models.Lead); ok {
			logger.Info("lead captured", "lead_id", lead.ID, "source", lead.Source)
		}
	})

	event.Listen("order.placed", func(payload interface{}) {
		if order, ok := payload.(models.Order); ok {
			logger.Info("order placed",
				"order_id", order.ID, "client_id", order.ClientID, "price", order.Price)
		}
	})

	event.Listen("order.payment_changed", func(payload interface{}) {
		if order, ok := payload.(models.Order); ok {
			logger.Info("order payment changed",
				"order_id", order.ID, "payment_status", order.PaymentStatus)
		}
	})
}
