package handler

import (
	"errors"
	"time"

	"go-chemoventry/internal/middleware"
	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
	"go-chemoventry/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	service service.InventoryService
}

func NewActivityHandler(s service.InventoryService) *ActivityHandler {
	return &ActivityHandler{service: s}
}

// RecordActivity appends to the ledger; the chemical's quantity moves in the
// same transaction.
func (h *ActivityHandler) RecordActivity(c *fiber.Ctx) error {
	var req service.RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user := middleware.CurrentUser(c)
	activity, err := h.service.RecordActivity(&req, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChemicalNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, model.ErrInsufficientQuantity), errors.Is(err, service.ErrInvalidAction):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(201).JSON(activity)
}

func (h *ActivityHandler) GetActivities(c *fiber.Ctx) error {
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing required parameters: start_date and end_date"})
	}

	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date, use YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date, use YYYY-MM-DD"})
	}

	filter := repository.ActivityFilter{
		Start: start,
		End:   service.EndOfDay(end),
	}
	if raw := c.Query("chemical"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid chemical filter"})
		}
		filter.ChemicalID = &id
	}
	if raw := c.Query("user"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user filter"})
		}
		filter.UserID = &id
	}

	activities, err := h.service.GetActivities(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(activities)
}
