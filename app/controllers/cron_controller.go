package controllers

import (
	"crypto/subtle"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/env"
	"github.com/dripgate/dripgate/internal/pkg/middleware"
)

// requireCronSecret authorizes scheduled maintenance calls via a shared
// bearer secret. When CRON_SECRET is unset the endpoints are disabled.
func requireCronSecret(c *fiber.Ctx) bool {
	secret := env.GetEnv("CRON_SECRET", "")
	if secret == "" {
		return false
	}
	token := middleware.ExtractSessionToken(c)
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

// HandleCronCleanupSessions deletes expired login sessions.
func HandleCronCleanupSessions(c *fiber.Ctx) error {
	if !requireCronSecret(c) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid cron secret")
	}

	sessionRepo := repository.GetGlobalFactory().GetSessionRepository()
	deleted, err := sessionRepo.DeleteExpired(time.Now().UTC())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Session cleanup failed")
	}

	log.Printf("[CRON] Session cleanup removed %d expired sessions", deleted)
	return c.JSON(fiber.Map{"deleted": deleted})
}

// HandleCronHealth reports whether cleanup is keeping up.
func HandleCronHealth(c *fiber.Ctx) error {
	if !requireCronSecret(c) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid cron secret")
	}

	sessionRepo := repository.GetGlobalFactory().GetSessionRepository()
	total, err := sessionRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Health check failed")
	}
	expired, err := sessionRepo.CountExpired(time.Now().UTC())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Health check failed")
	}

	return c.JSON(fiber.Map{
		"sessions_total":   total,
		"sessions_expired": expired,
	})
}
