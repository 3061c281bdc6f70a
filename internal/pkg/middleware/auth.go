package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/usercontext"
)

// SessionCookieName is the login cookie set by the auth controller.
const SessionCookieName = "session_token"

// SessionAuthMiddleware resolves the bearer session token (Authorization
// header or cookie) against the session store and attaches the user
// context. Requests without a valid session pass through anonymously;
// RequireAuth/RequireAdmin decide whether that is acceptable.
func SessionAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractSessionToken(c)
		if token == "" {
			return c.Next()
		}

		repo := repository.GetGlobalFactory().GetSessionRepository()
		session, err := repo.GetByToken(token)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("session lookup failed: %v", err)
			}
			return c.Next()
		}
		if session.IsExpired(time.Now()) {
			return c.Next()
		}

		user := session.User
		userCtx := usercontext.UserContext{
			UserID:     user.ID,
			Email:      user.Email,
			Name:       user.Name,
			IsLoggedIn: true,
			IsAdmin:    user.Role == models.ROLE_ADMIN,
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyUserID, user.ID)
		c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

		// Refresh last-seen timestamp best-effort.
		userRepo := repository.GetGlobalFactory().GetUserRepository()
		if err := userRepo.TouchLastActive(user.ID, time.Now()); err != nil {
			log.Printf("failed to update last active for user %d: %v", user.ID, err)
		}

		return c.Next()
	}
}

// RequireAuth ensures a logged-in session and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures a logged-in admin and returns JSON 401/403 otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin role required",
		})
	}
	return c.Next()
}

// ExtractSessionToken reads the bearer token from the Authorization header
// or falls back to the session cookie.
func ExtractSessionToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return strings.TrimSpace(c.Cookies(SessionCookieName))
}
