package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/service"
)

// SystemHandler serves the status snapshot and schema migrations.
type SystemHandler struct {
	system *service.SystemService
}

// NewSystemHandler constructs handler.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{system: systemService}
}

// Status GET /status.
func (h *SystemHandler) Status(c *fiber.Ctx) error {
	report, err := h.system.Status(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// PendingMigrations GET /migrations lists what POST would apply.
func (h *SystemHandler) PendingMigrations(c *fiber.Ctx) error {
	pending, err := h.system.PendingMigrations(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"pending": pending}})
}

// ApplyMigrations POST /migrations.
func (h *SystemHandler) ApplyMigrations(c *fiber.Ctx) error {
	applied, err := h.system.ApplyMigrations(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"applied": applied}})
}
