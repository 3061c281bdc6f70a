package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/dripgate/dripgate/app/controllers"
	"github.com/dripgate/dripgate/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(), middleware.SessionAuthMiddleware())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// public
	auth := api.Group("/auth")
	auth.Post("/login", controllers.HandleAuthLogin)
	auth.Post("/logout", controllers.HandleAuthLogout)
	auth.Post("/forgot-password", controllers.HandleForgotPassword)
	auth.Post("/reset-password", controllers.HandleResetPassword)
	api.Get("/settings", controllers.HandleSettingsGet)

	// subscriber routes
	user := api.Group("/user", middleware.RequireAuth)
	user.Get("/feed", controllers.HandleUserFeed)
	user.Post("/interactions", controllers.HandleUserInteraction)
	user.Post("/change-password", controllers.HandleChangePassword)

	// admin routes
	admin := api.Group("/admin", middleware.RequireAdmin)
	admin.Get("/content", controllers.HandleAdminContentList)
	admin.Post("/content", controllers.HandleAdminContentUpsert)
	admin.Delete("/content/:id", controllers.HandleAdminContentDelete)
	admin.Get("/stores", controllers.HandleAdminStoreList)
	admin.Post("/stores", controllers.HandleAdminStoreCreate)
	admin.Put("/stores/:id", controllers.HandleAdminStoreUpdate)
	admin.Delete("/stores/:id", controllers.HandleAdminStoreDelete)
	admin.Get("/users", controllers.HandleAdminUserList)
	admin.Get("/stats", controllers.HandleAdminStats)
	admin.Put("/settings", controllers.HandleAdminSettingsUpdate)

	// scheduled maintenance, authorized by CRON_SECRET instead of a session
	cron := api.Group("/cron")
	cron.Post("/cleanup-sessions", controllers.HandleCronCleanupSessions)
	cron.Get("/health", controllers.HandleCronHealth)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
