package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/gamification"
	"github.com/dripgate/dripgate/internal/pkg/utils"
)

func userView(u *models.User, now time.Time) fiber.Map {
	progress := gamification.ProgressFor(u.XP)
	return fiber.Map{
		"id":                 u.ID,
		"name":               u.Name,
		"email":              u.Email,
		"avatar_url":         utils.AvatarURL(u.Email, utils.DefaultAvatarSize),
		"status":             u.Status,
		"role":               u.Role,
		"subscription_start": formatTimePtr(u.SubscriptionStart),
		"subscription_end":   formatTimePtr(u.SubscriptionEnd),
		"renewal_count":      u.RenewalCount,
		"days_subscribed":    daysSince(u.SubscriptionStart, now),
		"xp":                 u.XP,
		"level":              progress.Level,
		"last_login_at":      formatTimePtr(u.LastLoginAt),
		"last_active_at":     formatTimePtr(u.LastActiveAt),
		"created_at":         u.CreatedAt,
	}
}

// HandleAdminUserList returns a paginated subscriber list.
func HandleAdminUserList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	total, err := userRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}

	users, err := userRepo.List((page-1)*limit, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load users")
	}

	now := time.Now().UTC()
	views := make([]fiber.Map, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i], now))
	}

	return c.JSON(fiber.Map{
		"users": views,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
