package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rento/builders"
	"rento/constants"
	"rento/errors"
	"rento/metrics"
	"rento/models"
	"rento/services/logger"
	"rento/services/notification"
	"rento/storage"

	"github.com/google/uuid"
)

type TicketService struct {
	tickets    *storage.Collection[models.Ticket]
	properties *PropertyService
	notifier   notification.Service
	clock      Clock
	logger     logger.Logger
}

type TicketServiceOptions struct {
	Store      storage.Store
	Properties *PropertyService
	Notifier   notification.Service
	Clock      Clock
	Logger     logger.Logger
}

func NewTicketService(opts TicketServiceOptions) *TicketService {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.Nop{}
	}
	return &TicketService{
		tickets: storage.NewCollection(opts.Store, constants.KeyTickets,
			storage.WithCreateOnRead[models.Ticket]()),
		properties: opts.Properties,
		notifier:   opts.Notifier,
		clock:      opts.Clock,
		logger:     opts.Logger,
	}
}

func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.tickets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketService) ListByProperty(ctx context.Context, propertyID string) ([]models.Ticket, error) {
	tickets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Ticket, 0)
	for _, t := range tickets {
		if t.PropertyID == propertyID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (*models.Ticket, error) {
	tickets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, errors.ErrTicketNotFound
}

// Create stores a landlord ticket. Id and timestamps are assigned here and
// any values supplied by the caller are discarded.
func (s *TicketService) Create(ctx context.Context, draft models.Ticket) (*models.Ticket, error) {
	return s.create(ctx, builders.FromTicket(draft))
}

// SubmitTenantTicket stores a ticket from the public form of an existing property
func (s *TicketService) SubmitTenantTicket(ctx context.Context, propertyID string, draft models.Ticket) (*models.Ticket, error) {
	if _, err := s.properties.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	draft.AssignedTo = ""
	return s.create(ctx, builders.FromTicket(draft).WithProperty(propertyID).SubmittedByTenant())
}

func (s *TicketService) create(ctx context.Context, b *builders.TicketBuilder) (*models.Ticket, error) {
	ticket := b.WithID(uuid.NewString()).CreatedAt(s.clock.Now()).Build()

	_, err := s.tickets.Mutate(ctx, func(tickets []models.Ticket) ([]models.Ticket, error) {
		return append(tickets, *ticket), nil
	})
	if err != nil {
		s.logger.Error("save ticket %s: %v", ticket.ID, err)
		return nil, fmt.Errorf("save tickets: %w", err)
	}

	source := constants.TicketSourceInternal
	if ticket.IsTenantSubmitted {
		source = constants.TicketSourceTenant
	}
	metrics.TicketsCreatedTotal.WithLabelValues(source).Inc()
	s.publish(notification.EventTicketCreated, ticket)
	s.logger.Info("ticket %s created for property %s (%s)", ticket.ID, ticket.PropertyID, source)
	return ticket, nil
}

// Update merges patch into the stored ticket, keeping id and createdAt and
// refreshing updatedAt. An unknown id writes nothing.
func (s *TicketService) Update(ctx context.Context, id string, patch models.TicketPatch) (*models.Ticket, error) {
	var updated models.Ticket
	_, err := s.tickets.Mutate(ctx, func(tickets []models.Ticket) ([]models.Ticket, error) {
		for i := range tickets {
			if tickets[i].ID != id {
				continue
			}
			patch.Apply(&tickets[i])
			tickets[i].UpdatedAt = s.clock.Now()
			updated = tickets[i]
			return tickets, nil
		}
		return nil, errors.ErrTicketNotFound
	})
	if err != nil {
		return nil, err
	}
	s.publish(notification.EventTicketUpdated, &updated)
	return &updated, nil
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	_, err := s.tickets.Mutate(ctx, func(tickets []models.Ticket) ([]models.Ticket, error) {
		kept := make([]models.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(tickets) {
			return nil, errors.ErrTicketNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("ticket %s deleted", id)
	return nil
}

// TicketQuery mirrors the filters of the tickets page. Empty fields match all.
type TicketQuery struct {
	Search     string
	Status     models.TicketStatus
	PropertyID string
	Source     string
}

// Filter applies q, newest first
func (s *TicketService) Filter(ctx context.Context, q TicketQuery) ([]models.Ticket, error) {
	tickets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	if q.Search != "" {
		props, err := s.properties.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range props {
			names[p.ID] = p.Name
		}
	}

	term := normalizeInput(q.Search)
	result := make([]models.Ticket, 0)
	for _, t := range tickets {
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.PropertyID != "" && t.PropertyID != q.PropertyID {
			continue
		}
		switch q.Source {
		case constants.TicketSourceTenant:
			if !t.IsTenantSubmitted {
				continue
			}
		case constants.TicketSourceInternal:
			if t.IsTenantSubmitted {
				continue
			}
		}
		if term != "" && !matchesTicket(t, term, names) {
			continue
		}
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matchesTicket(t models.Ticket, term string, names map[string]string) bool {
	propertyName, ok := names[t.PropertyID]
	if !ok {
		propertyName = constants.UnknownPropertyName
	}
	for _, field := range []string{t.Title, t.Description, t.AssignedTo, propertyName} {
		if containsNormalized(field, term) {
			return true
		}
	}
	return false
}

// Overdue lists unresolved tickets whose deadline is before now
func (s *TicketService) Overdue(ctx context.Context, now time.Time) ([]models.Ticket, error) {
	tickets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Ticket, 0)
	for i := range tickets {
		if tickets[i].IsOverdue(now) {
			result = append(result, tickets[i])
		}
	}
	return result, nil
}

// publish failures are logged only; the ticket is already saved
func (s *TicketService) publish(eventType string, t *models.Ticket) {
	err := s.notifier.Publish(notification.Event{Type: eventType, Data: t, At: s.clock.Now()})
	if err != nil {
		s.logger.Warn("publish %s for ticket %s: %v", eventType, t.ID, err)
	}
}
