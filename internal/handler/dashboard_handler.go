package handler

import (
	"log"
	"time"

	"go-chemoventry/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.service.GetOverview(time.Now())
	if err != nil {
		log.Printf("dashboard overview failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(overview)
}
