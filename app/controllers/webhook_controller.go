package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/commerce"
	"github.com/dripgate/dripgate/internal/pkg/database"
	"github.com/dripgate/dripgate/internal/pkg/env"
	"github.com/dripgate/dripgate/internal/pkg/jobqueue"
)

// Shopify webhook headers.
const (
	headerShopifyHmac   = "X-Shopify-Hmac-Sha256"
	headerShopifyDomain = "X-Shopify-Shop-Domain"
	headerShopifyTopic  = "X-Shopify-Topic"
)

var webhookQueue *jobqueue.Queue

// SetWebhookQueue injects the background queue used for welcome mails.
func SetWebhookQueue(q *jobqueue.Queue) {
	webhookQueue = q
}

// HandleCommerceWebhook processes a payment notification. The signature
// is verified over the raw body before any parsing; 2xx is returned only
// after the provisioning transaction committed, so sender retries stay
// safe under the order-id idempotency barrier.
func HandleCommerceWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get(headerShopifyHmac))
	domainHint := strings.TrimSpace(c.Get(headerShopifyDomain))
	topic := strings.TrimSpace(c.Get(headerShopifyTopic))

	verifier := commerce.NewVerifier(
		repository.GetGlobalFactory().GetTenantRepository(),
		env.GetEnv("SHOP_WEBHOOK_SECRET", ""),
	)
	switch verifier.Verify(rawBody, signature, domainHint) {
	case commerce.Authentic:
		// fall through to processing
	case commerce.SignatureMismatch:
		return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "Webhook signature mismatch")
	case commerce.NoSecretConfigured:
		return jsonError(c, fiber.StatusUnauthorized, "no_secret_configured", "No webhook secret configured for this shop")
	}

	event, err := commerce.ParsePaymentEvent(rawBody)
	if err != nil {
		if errors.Is(err, commerce.ErrNoCustomerEmail) {
			// Acknowledge so the sender stops retrying an event we can
			// never attribute to a subscriber.
			log.Printf("webhook %s: no customer email, ignoring", topic)
			return c.JSON(fiber.Map{"ok": true, "ignored": true})
		}
		return jsonError(c, fiber.StatusBadRequest, "invalid_payload", "Webhook payload could not be parsed")
	}

	var notifier commerce.WelcomeNotifier
	if webhookQueue != nil {
		notifier = jobqueue.NewWelcomeNotifier(webhookQueue)
	}
	engine := commerce.NewEngine(commerce.NewRepository(database.GetDB()), notifier)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	outcome, err := engine.ProcessPaymentEvent(ctx, event)
	if err != nil {
		log.Printf("webhook %s: provisioning failed for order %s: %v", topic, event.OrderID, err)
		return jsonError(c, fiber.StatusInternalServerError, "provisioning_failed", "Provisioning failed, retry later")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"outcome": string(outcome.Kind),
	})
}
