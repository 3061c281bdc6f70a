package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/gamification"
	"github.com/dripgate/dripgate/internal/pkg/usercontext"
)

// interactionRequest addresses content by the public id the feed hands
// out, never by the numeric database key.
type interactionRequest struct {
	ContentID string `json:"content_id"`
	Type      string `json:"type"`
	Value     bool   `json:"value"`
	Note      string `json:"note"`
}

// fieldSet reports whether the addressed field already carries a value.
// A nil record means no interaction exists yet.
func fieldSet(in *models.Interaction, interactionType string) bool {
	if in == nil {
		return false
	}
	switch interactionType {
	case "like":
		return in.Liked
	case "favorite":
		return in.Favorite
	case "note":
		return in.HasNote()
	}
	return false
}

// HandleUserInteraction upserts one field of the caller's interaction
// record for a content item. Fields merge: a like never clobbers a
// favorite or note written concurrently.
func HandleUserInteraction(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req interactionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.ContentID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Content ID is required")
	}

	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetByUUID(req.ContentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Unknown content")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save interaction")
	}

	// Previous state decides whether XP is due. A missing record reads
	// as all fields unset.
	prev, err := repos.Interaction.Get(userCtx.UserID, content.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save interaction")
	}

	var interaction *models.Interaction
	switch req.Type {
	case "like":
		interaction, err = repos.Interaction.UpsertLike(userCtx.UserID, content.ID, req.Value)
	case "favorite":
		interaction, err = repos.Interaction.UpsertFavorite(userCtx.UserID, content.ID, req.Value)
	case "note":
		interaction, err = repos.Interaction.UpsertNote(userCtx.UserID, content.ID, req.Note)
	default:
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Type must be like, favorite or note")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save interaction")
	}

	points := gamification.AwardFor(req.Type, fieldSet(prev, req.Type), fieldSet(interaction, req.Type))
	if points > 0 {
		if err := repos.User.AddXP(userCtx.UserID, points); err != nil {
			log.Printf("failed to award %d xp to user %d: %v", points, userCtx.UserID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"interaction": interaction,
	})
}
