package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

func sampleDetail() domain.TicketDetail {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return domain.TicketDetail{
		Ticket: domain.Ticket{
			ID:          uuid.MustParse("018e0b7a-1c2d-7000-8000-000000000001"),
			Title:       "Printer broken",
			Description: "Jams on every print job",
			Status:      domain.TicketStatusOpen,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		Requester: domain.UserSummary{Username: "alice"},
	}
}

func TestExportTicketCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	tickets := repository.NewMockTicketRepository(ctrl)
	svc := NewExportService(tickets)

	detail := sampleDetail()
	tickets.EXPECT().GetByID(gomock.Any(), detail.ID).Return(&detail, nil)

	out, err := svc.TicketCSV(context.Background(), detail.ID)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Ticket,Updated at,Requester"))
	assert.Contains(t, lines[1], "alice")
	assert.True(t, strings.HasSuffix(lines[1], "null,null,null"))
}

func TestExportTicketsCSVEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	tickets := repository.NewMockTicketRepository(ctrl)
	tickets.EXPECT().List(gomock.Any()).Return([]domain.TicketDetail{}, nil)

	out, err := NewExportService(tickets).TicketsCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "\n"))
}

func TestExportTicketPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	tickets := repository.NewMockTicketRepository(ctrl)
	svc := NewExportService(tickets)

	detail := sampleDetail()
	tickets.EXPECT().GetByID(gomock.Any(), detail.ID).Return(&detail, nil)
	out, err := svc.TicketPDF(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))

	missing := uuid.New()
	tickets.EXPECT().GetByID(gomock.Any(), missing).Return(nil, repository.ErrNotFound)
	_, err = svc.TicketPDF(context.Background(), missing)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
