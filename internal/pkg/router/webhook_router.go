package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/controllers"
)

// WebhookRouter registers the billing provider endpoints. They sit outside
// the /api group: authentication is the HMAC signature, not a session, and
// rate limiting upstream retries would only delay provisioning.
type WebhookRouter struct {
}

func (h WebhookRouter) InstallRouter(app *fiber.App) {
	app.Post("/webhooks/shopify", controllers.HandleCommerceWebhook)
}

func NewWebhookRouter() *WebhookRouter {
	return &WebhookRouter{}
}
