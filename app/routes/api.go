// Package routes mounts every API endpoint onto the router.
package routes

import (
	"github.com/careerloft/careerloft/app/controllers"
	"github.com/careerloft/careerloft/pkg/middleware"
	"github.com/careerloft/careerloft/pkg/rbac"
	"github.com/careerloft/careerloft/pkg/router"
)

// Register wires the API surface. Three tiers: public storefront endpoints,
// authenticated user endpoints, and the admin back office.
func Register(r *router.Router) {
	auth := controllers.NewAuthController()
	orders := controllers.NewOrderController()
	leads := controllers.NewLeadController()
	messages := controllers.NewMessageController()
	documents := controllers.NewDocumentController()
	admin := controllers.NewAdminController()
	widgets := controllers.NewWidgetController()
	applications := controllers.NewApplicationController()

	api := r.Group("/api")

	// Public storefront: signup, login, lead capture, the scanner, the
	// anonymous lead chat and the package catalogue.
	api.Post("/auth/signup", "auth.signup", auth.Signup)
	api.Post("/auth/login", "auth.login", auth.Login)
	api.Post("/leads", "leads.capture", leads.Capture)
	api.Post("/scanner", "scanner", leads.Scan)
	api.Get("/leads/{id}/messages", "leads.chat.show", messages.LeadThread)
	api.Post("/leads/{id}/messages", "leads.chat.post", messages.PostToLead)
	api.Get("/settings", "settings.public", admin.PublicSettings)

	// Authenticated endpoints.
	user := api.Group("", middleware.Auth)
	user.Post("/auth/logout", "auth.logout", auth.Logout)
	user.Get("/auth/me", "auth.me", auth.Me)
	user.Post("/auth/stop-impersonation", "auth.stop_impersonation", auth.StopImpersonation)

	user.Post("/orders", "orders.checkout", orders.Checkout)
	user.Get("/orders", "orders.index", orders.Index)
	user.Get("/orders/{id}", "orders.show", orders.Show)
	user.Patch("/orders/{id}/status", "orders.status", orders.UpdateStatus)

	user.Get("/orders/{id}/messages", "orders.messages.index", messages.OrderThread)
	user.Post("/orders/{id}/messages", "orders.messages.post", messages.PostToOrder)
	user.Patch("/messages/{id}/read", "messages.read", messages.MarkRead)

	user.Post("/orders/{id}/documents", "documents.upload", documents.Upload)
	user.Get("/orders/{id}/documents", "documents.index", documents.Index)
	user.Get("/documents/{id}/download", "documents.download", documents.Download)
	user.Delete("/documents/{id}", "documents.delete", documents.Delete)

	user.Get("/widgets", "widgets.show", widgets.Layout)
	user.Put("/widgets", "widgets.save", widgets.SaveLayout)

	user.Get("/applications", "applications.index", applications.Index)
	user.Post("/applications", "applications.create", applications.Create)
	user.Patch("/applications/{id}", "applications.update", applications.Update)
	user.Delete("/applications/{id}", "applications.delete", applications.Delete)

	user.Get("/leads/mine", "leads.mine", leads.Mine, rbac.HasRole("writer", "admin"))

	// Escrow and assignment live on the order path but are admin actions.
	adminOnly := rbac.HasRole("admin")
	user.Post("/orders/{id}/assign", "orders.assign", orders.AssignWriter, adminOnly)
	user.Post("/orders/{id}/hold", "orders.hold", orders.Hold, adminOnly)
	user.Post("/orders/{id}/release", "orders.release", orders.Release, adminOnly)
	user.Post("/orders/{id}/refund", "orders.refund", orders.Refund, adminOnly)
	user.Patch("/orders/{id}/price", "orders.price", orders.OverridePrice, adminOnly)

	// Admin back office.
	back := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	back.Post("/impersonate/{id}", "admin.impersonate", auth.Impersonate)

	back.Get("/leads", "admin.leads.index", leads.Index)
	back.Patch("/leads/{id}", "admin.leads.update", leads.Update)
	back.Delete("/leads/{id}", "admin.leads.delete", leads.Delete)

	back.Get("/settings", "admin.settings.show", admin.Settings)
	back.Put("/settings", "admin.settings.update", admin.UpdateSettings)

	back.Get("/users", "admin.users.index", admin.Users)
	back.Get("/writers", "admin.writers", admin.Writers)
	back.Patch("/users/{id}/role", "admin.users.role", admin.ChangeRole)

	back.Get("/failed-jobs", "admin.failed_jobs", admin.FailedJobs)
}
