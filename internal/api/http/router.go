package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plandesk/admin-api/internal/api/http/handlers"
	"github.com/plandesk/admin-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Transfers      *handlers.TransfersHandler
	Activity       *handlers.ActivityHandler
	Comments       *handlers.CommentsHandler
	Plans          *handlers.PlansHandler
	Categories     *handlers.CategoriesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaff())

	admin.Get("/agents", cfg.Users.ListAgents)

	tickets := admin.Group("/tickets")
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/category", cfg.Tickets.UpdateCategory)
	tickets.Patch("/:id/assign", cfg.Tickets.AssignTicket)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.DeleteTicket)
	tickets.Delete("/:id/attachments", cfg.Tickets.RemoveAttachment)

	tickets.Post("/:id/transfer", cfg.Transfers.RequestTransfer)
	tickets.Patch("/:id/transfer", auth.RequireAdmin(), cfg.Transfers.ManageTransfer)
	tickets.Delete("/:id/transfer", cfg.Transfers.CancelTransfer)

	tickets.Get("/:id/activity", cfg.Activity.ListActivity)

	tickets.Get("/:id/comments", cfg.Comments.ListComments)
	tickets.Post("/:id/comments", cfg.Comments.AddComment)
	admin.Patch("/comments/:commentId", cfg.Comments.UpdateComment)
	admin.Delete("/comments/:commentId", cfg.Comments.DeleteComment)

	plans := admin.Group("/plans", auth.RequireAdmin())
	plans.Get("", cfg.Plans.ListPlans)
	plans.Post("", cfg.Plans.CreatePlan)
	plans.Put("/order", cfg.Plans.ReorderPlans)
	plans.Get("/:id", cfg.Plans.GetPlan)
	plans.Patch("/:id", cfg.Plans.UpdatePlan)
	plans.Delete("/:id", cfg.Plans.DeletePlan)
	plans.Get("/:id/post-trial-candidates", cfg.Plans.PostTrialCandidates)

	categories := admin.Group("/categories")
	categories.Get("", cfg.Categories.ListCategories)
	categories.Get("/:id", cfg.Categories.GetCategory)
	categories.Post("", auth.RequireAdmin(), cfg.Categories.CreateCategory)
	categories.Patch("/:id", auth.RequireAdmin(), cfg.Categories.UpdateCategory)
	categories.Delete("/:id", auth.RequireAdmin(), cfg.Categories.DeleteCategory)
}
