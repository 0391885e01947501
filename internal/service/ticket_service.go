package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	checks     *Checks
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Checks     *Checks
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateTicketInput describes a new ticket. Requester is a username and is
// only honoured for privileged callers.
type CreateTicketInput struct {
	Title       string
	Description string
	Requester   string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		checks:     deps.Checks,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

func (s *TicketService) Count(ctx context.Context) (int64, error) {
	n, err := s.tickets.Count(ctx)
	return n, storageError(err, "ticket")
}

func (s *TicketService) List(ctx context.Context) ([]domain.TicketDetail, error) {
	tickets, err := s.tickets.List(ctx)
	return tickets, storageError(err, "ticket")
}

func (s *TicketService) Get(ctx context.Context, id uuid.UUID) (*domain.TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	return ticket, storageError(err, "ticket")
}

// Create files a new OPEN ticket and returns its id.
func (s *TicketService) Create(ctx context.Context, caller auth.Identity, input CreateTicketInput) (uuid.UUID, error) {
	requesterID := caller.ID
	if name := auth.TicketRequester(caller, input.Requester); name != caller.Username {
		requester, err := s.users.GetByUsername(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return uuid.Nil, apperrors.NewNotFound("requester", map[string]any{"username": name})
			}
			return uuid.Nil, apperrors.NewDatabaseError(err)
		}
		requesterID = requester.ID
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, apperrors.NewInternalError(err)
	}

	ticket := &domain.Ticket{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		RequesterID: requesterID,
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return uuid.Nil, storageError(err, "ticket")
	}

	s.publish(ctx, events.NewTicketEvent(events.EventTicketCreated, ticket.ID, actor(caller), events.TicketCreatedPayload{
		Title:       ticket.Title,
		RequesterID: requesterID.String(),
	}))
	return ticket.ID, nil
}

// Update applies the caller-scoped partial update and returns the ticket id.
func (s *TicketService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p domain.TicketPatch) (uuid.UUID, error) {
	p = auth.ScopeTicketPatch(caller, p)

	if err := s.checks.Exists(ctx, KindTicket, id); err != nil {
		return uuid.Nil, err
	}
	if p.Empty() {
		return uuid.Nil, apperrors.NewNotModified()
	}
	if requester, ok := p.Requester.Get(); ok {
		if err := s.checks.Exists(ctx, KindUser, requester); err != nil {
			return uuid.Nil, err
		}
	}
	if closedBy, ok := p.ClosedBy.Get(); ok {
		if err := s.checks.Exists(ctx, KindUser, closedBy); err != nil {
			return uuid.Nil, err
		}
	}

	prev, err := s.tickets.Update(ctx, id, p)
	if err != nil {
		return uuid.Nil, storageError(err, "ticket")
	}

	who := actor(caller)
	s.publish(ctx, events.NewTicketEvent(events.EventTicketUpdated, id, who, events.TicketUpdatedPayload{Fields: patchedFields(p)}))
	if status, ok := p.Status.Get(); ok && status != prev {
		s.publish(ctx, events.NewTicketEvent(events.EventTicketStatusChanged, id, who, events.TicketStatusChangedPayload{
			OldStatus: prev,
			NewStatus: status,
		}))
	}
	return id, nil
}

// Delete removes an existing ticket.
func (s *TicketService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := s.checks.Exists(ctx, KindTicket, id); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return storageError(err, "ticket")
	}
	s.publish(ctx, events.NewTicketEvent(events.EventTicketDeleted, id, actor(caller), nil))
	return nil
}

// publish never fails the request; delivery problems are logged.
func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("ticket event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func actor(identity auth.Identity) events.Actor {
	return events.Actor{UserID: identity.ID.String(), Username: identity.Username, Role: identity.Role}
}

func patchedFields(p domain.TicketPatch) []string {
	fields := make([]string, 0, 6)
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"title", p.Title.Set()},
		{"description", p.Description.Set()},
		{"requester", p.Requester.Set()},
		{"status", p.Status.Set()},
		{"closed_by", p.ClosedBy.Set()},
		{"solution", p.Solution.Set()},
	} {
		if f.set {
			fields = append(fields, f.name)
		}
	}
	return fields
}
