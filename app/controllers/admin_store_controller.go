package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
)

type storeRequest struct {
	Name          string `json:"name"`
	Domain        string `json:"domain"`
	WebhookSecret string `json:"webhook_secret"`
	IsActive      *bool  `json:"is_active"`
}

// tenantView hides the webhook secret from list/detail responses.
func tenantView(t *models.StoreTenant) fiber.Map {
	return fiber.Map{
		"id":         t.ID,
		"name":       t.Name,
		"domain":     t.Domain,
		"is_active":  t.IsActive,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// HandleAdminStoreList returns all store tenants without their secrets.
func HandleAdminStoreList(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenants, err := repo.ListAll()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stores")
	}

	views := make([]fiber.Map, 0, len(tenants))
	for i := range tenants {
		views = append(views, tenantView(&tenants[i]))
	}
	return c.JSON(views)
}

// HandleAdminStoreCreate registers a new upstream shop.
func HandleAdminStoreCreate(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Name == "" || req.Domain == "" || req.WebhookSecret == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Name, domain and webhook secret are required")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	if _, err := repo.GetByDomain(req.Domain); err == nil {
		return jsonError(c, fiber.StatusBadRequest, "duplicate_domain", "A store with this domain already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check domain")
	}

	tenant := &models.StoreTenant{
		Name:          req.Name,
		Domain:        req.Domain,
		WebhookSecret: req.WebhookSecret,
		IsActive:      true,
	}
	if err := repo.Create(tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create store")
	}

	return c.Status(fiber.StatusCreated).JSON(tenantView(tenant))
}

// HandleAdminStoreUpdate edits a tenant; only supplied fields change.
func HandleAdminStoreUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid store id")
	}

	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Store not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load store")
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Domain != "" {
		tenant.Domain = req.Domain
	}
	if req.WebhookSecret != "" {
		tenant.WebhookSecret = req.WebhookSecret
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	if err := repo.Update(tenant); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update store")
	}

	return c.JSON(tenantView(tenant))
}

// HandleAdminStoreDelete removes a tenant.
func HandleAdminStoreDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid store id")
	}

	repo := repository.GetGlobalFactory().GetTenantRepository()
	if err := repo.Delete(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete store")
	}

	return c.JSON(fiber.Map{"success": true})
}
