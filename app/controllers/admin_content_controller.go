package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
	"github.com/dripgate/dripgate/internal/pkg/unlock"
)

type contentUpsertRequest struct {
	Day        int              `json:"day"`
	Title      string           `json:"title"`
	UnlockHour int              `json:"unlock_hour"`
	Media      models.MediaList `json:"media"`
}

// HandleAdminContentList returns the full catalog in delivery order.
func HandleAdminContentList(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetContentRepository()
	catalog, err := repo.GetAllOrdered()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load catalog")
	}
	return c.JSON(catalog)
}

// HandleAdminContentUpsert creates or replaces the content item for a day
// slot. Invalid day offsets are rejected here, before they can ever reach
// the scheduler.
func HandleAdminContentUpsert(c *fiber.Ctx) error {
	var req contentUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if len(req.Media) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Media list is required")
	}
	if err := unlock.ValidateCatalogEntry(req.Day, req.UnlockHour); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_catalog_entry", err.Error())
	}

	content := &models.Content{
		Title:      req.Title,
		DayOffset:  req.Day,
		UnlockHour: req.UnlockHour,
		Media:      req.Media,
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	if err := repo.UpsertByDay(content); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save content")
	}

	unlock.InvalidateCatalogCache()

	return c.JSON(content)
}

// HandleAdminContentDelete removes a catalog item and its interactions.
func HandleAdminContentDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid content id")
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	if _, err := repo.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Content not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load content")
	}
	if err := repo.Delete(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete content")
	}

	unlock.InvalidateCatalogCache()

	return c.JSON(fiber.Map{"success": true})
}
