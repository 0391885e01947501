package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/service"
)

const (
	contentTypePDF = "application/pdf"
	contentTypeCSV = "text/csv; charset=utf-8"
)

// ExportHandler serves ticket downloads.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{export: exportService}
}

// TicketPDF GET /export/pdf/ticket/:id.
func (h *ExportHandler) TicketPDF(c *fiber.Ctx) error {
	id, err := dto.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	body, err := h.export.TicketPDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	return download(c, contentTypePDF, fmt.Sprintf("ticket-%s.pdf", id), body)
}

// TicketCSV GET /export/csv/ticket/:id.
func (h *ExportHandler) TicketCSV(c *fiber.Ctx) error {
	id, err := dto.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	body, err := h.export.TicketCSV(c.UserContext(), id)
	if err != nil {
		return err
	}
	return download(c, contentTypeCSV, fmt.Sprintf("ticket-%s.csv", id), body)
}

// TicketsCSV GET /export/csv/tickets.
func (h *ExportHandler) TicketsCSV(c *fiber.Ctx) error {
	body, err := h.export.TicketsCSV(c.UserContext())
	if err != nil {
		return err
	}
	return download(c, contentTypeCSV, "tickets.csv", body)
}

func download(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
