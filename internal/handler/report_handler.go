package handler

import (
	"errors"
	"log"
	"time"

	"go-chemoventry/internal/report"
	"go-chemoventry/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GenerateReport builds one of the four report kinds and streams it back as
// an attachment in the requested format (pdf default, excel optional).
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	format, ok := report.ParseFormat(c.Query("format"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid format, use pdf or excel"})
	}

	table, err := h.buildTable(c)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReportParams), errors.Is(err, errUnknownReportType):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("report assembly failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Error generating report"})
		}
	}

	data, err := table.Render(format)
	if err != nil {
		log.Printf("report rendering failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Error generating report"})
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+table.Filename(format)+`"`)
	return c.Send(data)
}

var errUnknownReportType = errors.New("invalid report type, must be one of: inventory, usage, expiry, low-stock")

func (h *ReportHandler) buildTable(c *fiber.Ctx) (*report.Table, error) {
	now := time.Now()

	switch c.Params("type") {
	case "inventory":
		var locationID *uuid.UUID
		if raw := c.Query("location"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, service.ErrInvalidReportParams
			}
			locationID = &id
		}
		return h.service.InventoryReport(c.Query("start_date"), c.Query("end_date"), locationID, now)

	case "usage":
		var chemicalID, userID *uuid.UUID
		if raw := c.Query("chemical_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, service.ErrInvalidReportParams
			}
			chemicalID = &id
		}
		if raw := c.Query("user_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, service.ErrInvalidReportParams
			}
			userID = &id
		}
		return h.service.UsageReport(c.Query("start_date"), c.Query("end_date"), chemicalID, userID)

	case "expiry":
		return h.service.ExpiryReport(c.Query("days"), now)

	case "low-stock":
		return h.service.LowStockReport(c.Query("threshold"), now)
	}

	return nil, errUnknownReportType
}
