package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mlemaire/user-management-api/internal/database"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root answers the unauthenticated service banner.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "User Management API",
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Check reports API and database health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := database.Ping(); err != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus == "down" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":    "ok",
		"db":        dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
