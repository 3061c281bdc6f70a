package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// daysSince counts whole days between then and now, clamped to >= 0.
func daysSince(then *time.Time, now time.Time) int {
	if then == nil {
		return 0
	}
	d := int(now.Sub(*then).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
