package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/gamification"
	"github.com/dripgate/dripgate/internal/pkg/unlock"
	"github.com/dripgate/dripgate/internal/pkg/usercontext"
)

// HandleUserFeed returns the authenticated user's unlock-annotated
// delivery list plus their leveling state.
func HandleUserFeed(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	scheduler := unlock.NewScheduler(
		unlock.NewCachedCatalog(repos.Content),
		repos.Interaction,
		repos.User,
	)

	feed, err := scheduler.FeedFor(userCtx.UserID)
	if err != nil {
		if errors.Is(err, unlock.ErrNoSubscription) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "precondition_failed", "No subscription start recorded for this account")
		}
		if errors.Is(err, unlock.ErrInvalidCatalogEntry) {
			return jsonError(c, fiber.StatusInternalServerError, "invalid_catalog", "Catalog contains an invalid entry")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to compute feed")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	return c.JSON(fiber.Map{
		"deliveries":   feed,
		"gamification": gamification.ProgressFor(user.XP),
	})
}
