package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/env"
	"github.com/dripgate/dripgate/internal/pkg/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthLogin validates credentials, checks the subscription window
// for subscribers, and issues a session token as cookie + JSON.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Email is required")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid credentials")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Login failed")
	}

	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid credentials")
	}

	now := time.Now()

	// Admins always get in; subscribers need a live subscription window.
	if user.Role == models.ROLE_USER && !user.HasValidSubscription(now) {
		return jsonError(c, fiber.StatusForbidden, "subscription_invalid", "Your subscription is not active")
	}

	session, err := models.NewSession(user.ID, now)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Session could not be created")
	}
	if err := repos.Session.Create(session); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Session could not be stored")
	}

	user.LastLoginAt = &now
	if err := repos.User.Update(user); err != nil {
		log.Printf("failed to update last login for user %d: %v", user.ID, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   !env.IsDev(),
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   session.Token,
		"role":    user.Role,
	})
}

// HandleAuthLogout destroys the current session.
func HandleAuthLogout(c *fiber.Ctx) error {
	token := middleware.ExtractSessionToken(c)
	if token != "" {
		repo := repository.GetGlobalFactory().GetSessionRepository()
		if err := repo.DeleteByToken(token); err != nil {
			log.Printf("session delete failed: %v", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return c.JSON(fiber.Map{"success": true})
}
