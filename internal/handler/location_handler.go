package handler

import (
	"errors"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LocationHandler struct {
	service service.LocationService
}

func NewLocationHandler(s service.LocationService) *LocationHandler {
	return &LocationHandler{service: s}
}

func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var location model.Location
	if err := c.BodyParser(&location); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateLocation(&location); err != nil {
		if errors.Is(err, service.ErrLocationExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(location)
}

func (h *LocationHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.service.GetLocations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(locations)
}

func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	location, err := h.service.GetLocationByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Location not found"})
	}
	return c.JSON(location)
}

func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	var req model.Location
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	location, err := h.service.UpdateLocation(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrLocationExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(location)
}

func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	if err := h.service.DeleteLocation(id); err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrLocationOccupied):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}
	return c.SendStatus(204)
}
