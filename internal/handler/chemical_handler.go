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

type ChemicalHandler struct {
	service service.InventoryService
}

func NewChemicalHandler(s service.InventoryService) *ChemicalHandler {
	return &ChemicalHandler{service: s}
}

func (h *ChemicalHandler) CreateChemical(c *fiber.Ctx) error {
	var chemical model.Chemical
	if err := c.BodyParser(&chemical); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	creator := middleware.CurrentUser(c)
	if err := h.service.CreateChemical(&chemical, creator.ID); err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(chemical)
}

func (h *ChemicalHandler) GetChemicals(c *fiber.Ctx) error {
	filter, err := parseChemicalFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	chemicals, err := h.service.GetChemicals(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(chemicals)
}

func (h *ChemicalHandler) GetChemical(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid chemical ID"})
	}

	chemical, err := h.service.GetChemicalByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Chemical not found"})
	}
	return c.JSON(chemical)
}

func (h *ChemicalHandler) UpdateChemical(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid chemical ID"})
	}

	var req model.Chemical
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	chemical, err := h.service.UpdateChemical(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChemicalNotFound), errors.Is(err, service.ErrLocationNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(chemical)
}

func (h *ChemicalHandler) DeleteChemical(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid chemical ID"})
	}

	if err := h.service.DeleteChemical(id); err != nil {
		if errors.Is(err, service.ErrChemicalNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.SendStatus(204)
}

func parseChemicalFilter(c *fiber.Ctx) (repository.ChemicalFilter, error) {
	filter := repository.ChemicalFilter{
		ChemicalType:    model.ChemicalType(c.Query("chemical_type")),
		ChemicalState:   model.ChemicalState(c.Query("chemical_state")),
		ReactivityGroup: model.ReactivityGroup(c.Query("reactivity_group")),
		Search:          c.Query("search"),
	}

	if filter.ChemicalType != "" && !model.ValidChemicalType(filter.ChemicalType) {
		return filter, errors.New("invalid chemical_type filter")
	}
	if filter.ChemicalState != "" && !model.ValidChemicalState(filter.ChemicalState) {
		return filter, errors.New("invalid chemical_state filter")
	}
	if filter.ReactivityGroup != "" && !model.ValidReactivityGroup(filter.ReactivityGroup) {
		return filter, errors.New("invalid reactivity_group filter")
	}

	if raw := c.Query("location"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid location filter")
		}
		filter.LocationID = &id
	}
	if raw := c.Query("expires_after"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid expires_after date, use YYYY-MM-DD")
		}
		filter.ExpiresAfter = &t
	}
	if raw := c.Query("expires_before"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid expires_before date, use YYYY-MM-DD")
		}
		filter.ExpiresBefore = &t
	}

	return filter, nil
}
