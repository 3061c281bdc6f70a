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
	"github.com/dripgate/dripgate/internal/pkg/jobqueue"
	"github.com/dripgate/dripgate/internal/pkg/middleware"
	"github.com/dripgate/dripgate/internal/pkg/usercontext"
)

const minPasswordLength = 8

var mailQueue *jobqueue.Queue

// SetMailQueue injects the background queue used for password reset mails.
func SetMailQueue(q *jobqueue.Queue) {
	mailQueue = q
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleChangePassword replaces the caller's password after verifying the
// current one. Every session is revoked and a fresh one is issued, so the
// caller stays logged in while any other token stops working.
func HandleChangePassword(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if len(req.NewPassword) < minPasswordLength {
		return jsonError(c, fiber.StatusBadRequest, "weak_password", "Password must have at least 8 characters")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password change failed")
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Current password is wrong")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password change failed")
	}
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password change failed")
	}

	if _, err := repos.Session.DeleteByUser(user.ID); err != nil {
		log.Printf("session revocation failed for user %d: %v", user.ID, err)
	}

	now := time.Now()
	session, err := models.NewSession(user.ID, now)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Session could not be created")
	}
	if err := repos.Session.Create(session); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Session could not be stored")
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
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword starts the reset flow. The response is identical
// whether the address exists or not, so it never leaks which emails have
// an account.
func HandleForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Email is required")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("password reset lookup failed: %v", err)
		}
		return c.JSON(fiber.Map{"success": true})
	}

	token, err := user.BeginPasswordReset(time.Now().UTC())
	if err != nil {
		log.Printf("password reset token generation failed for user %d: %v", user.ID, err)
		return c.JSON(fiber.Map{"success": true})
	}
	if err := repos.User.Update(user); err != nil {
		log.Printf("password reset token store failed for user %d: %v", user.ID, err)
		return c.JSON(fiber.Map{"success": true})
	}

	if mailQueue != nil {
		job, err := jobqueue.NewJob(jobqueue.JobTypePasswordResetMail, jobqueue.PasswordResetMailPayload{
			Email: user.Email,
			Name:  user.Name,
			Token: token,
		})
		if err != nil {
			log.Printf("password reset mail job build failed for user %d: %v", user.ID, err)
		} else if err := mailQueue.Enqueue(job); err != nil {
			log.Printf("password reset mail enqueue failed for user %d: %v", user.ID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HandleResetPassword finishes the reset flow. The token is single-use;
// all sessions of the account are revoked on success.
func HandleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if len(req.Password) < minPasswordLength {
		return jsonError(c, fiber.StatusBadRequest, "weak_password", "Password must have at least 8 characters")
	}
	if req.Token == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_token", "Reset token is invalid or expired")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByPasswordResetToken(req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_token", "Reset token is invalid or expired")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password reset failed")
	}
	if !user.CanResetPassword(req.Token, time.Now().UTC()) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_token", "Reset token is invalid or expired")
	}

	if err := user.SetPassword(req.Password); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password reset failed")
	}
	user.ClearPasswordReset()
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Password reset failed")
	}

	if _, err := repos.Session.DeleteByUser(user.ID); err != nil {
		log.Printf("session revocation failed for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
