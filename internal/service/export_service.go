package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/export"
	"github.com/spec-kit/support-desk/internal/repository"
)

// ExportService renders tickets as downloadable documents.
type ExportService struct {
	tickets repository.TicketRepository
}

// NewExportService constructs the service.
func NewExportService(tickets repository.TicketRepository) *ExportService {
	return &ExportService{tickets: tickets}
}

// TicketPDF renders a single ticket as PDF.
func (s *ExportService) TicketPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.RenderTicketPDF(view)
}

// TicketCSV renders a single ticket as CSV.
func (s *ExportService) TicketCSV(ctx context.Context, id uuid.UUID) ([]byte, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.RenderTicketsCSV(view)
}

// TicketsCSV renders every ticket as CSV.
func (s *ExportService) TicketsCSV(ctx context.Context) ([]byte, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, storageError(err, "ticket")
	}
	views := make([]export.TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, export.NewTicketView(t))
	}
	return export.RenderTicketsCSV(views...)
}

func (s *ExportService) view(ctx context.Context, id uuid.UUID) (export.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return export.TicketView{}, storageError(err, "ticket")
	}
	return export.NewTicketView(*ticket), nil
}
