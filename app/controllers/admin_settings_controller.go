package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/repository"
)

// Known setting keys. Updates only touch these, so typos in a request
// body never create dead configuration rows.
const (
	SettingShopURL      = "shop_url"
	SettingSupportEmail = "support_email"
)

var knownSettingKeys = map[string]bool{
	SettingShopURL:      true,
	SettingSupportEmail: true,
}

type settingsRequest struct {
	ShopURL      *string `json:"shop_url"`
	SupportEmail *string `json:"support_email"`
}

// HandleSettingsGet returns the public settings. Missing keys come back
// as empty strings so clients do not need to distinguish unset from empty.
func HandleSettingsGet(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetSettingRepository()

	result := fiber.Map{}
	for key := range knownSettingKeys {
		value, err := repo.GetValue(key)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
		}
		result[key] = value
	}

	return c.JSON(result)
}

// HandleAdminSettingsUpdate writes the supplied keys. Only fields present
// in the request body are touched.
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetSettingRepository()

	updates := map[string]*string{
		SettingShopURL:      req.ShopURL,
		SettingSupportEmail: req.SupportEmail,
	}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := repo.SetValue(key, *value); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
		}
	}

	return HandleSettingsGet(c)
}
