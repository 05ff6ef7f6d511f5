package builders

import (
	"time"

	"rento/models"
)

// TicketBuilder assembles a ticket step by step with form defaults applied
type TicketBuilder struct {
	ticket *models.Ticket
}

// NewTicketBuilder starts from status open, medium urgency and no cost
func NewTicketBuilder() *TicketBuilder {
	return &TicketBuilder{
		ticket: &models.Ticket{
			Status:  models.TicketOpen,
			Urgency: models.UrgencyMedium,
		},
	}
}

// FromTicket starts from a copy of an existing draft
func FromTicket(t models.Ticket) *TicketBuilder {
	b := NewTicketBuilder()
	status, urgency := b.ticket.Status, b.ticket.Urgency
	*b.ticket = t
	if b.ticket.Status == "" {
		b.ticket.Status = status
	}
	if b.ticket.Urgency == "" {
		b.ticket.Urgency = urgency
	}
	return b
}

func (b *TicketBuilder) WithID(id string) *TicketBuilder {
	b.ticket.ID = id
	return b
}

func (b *TicketBuilder) WithProperty(propertyID string) *TicketBuilder {
	b.ticket.PropertyID = propertyID
	return b
}

func (b *TicketBuilder) WithDetails(title, description string) *TicketBuilder {
	b.ticket.Title = title
	b.ticket.Description = description
	return b
}

func (b *TicketBuilder) WithStatus(status models.TicketStatus) *TicketBuilder {
	b.ticket.Status = status
	return b
}

func (b *TicketBuilder) WithUrgency(urgency models.Urgency) *TicketBuilder {
	b.ticket.Urgency = urgency
	return b
}

func (b *TicketBuilder) WithAssignee(assignedTo string) *TicketBuilder {
	b.ticket.AssignedTo = assignedTo
	return b
}

func (b *TicketBuilder) WithCostEstimate(cost float64) *TicketBuilder {
	b.ticket.CostEstimate = cost
	return b
}

func (b *TicketBuilder) WithDeadline(deadline *time.Time) *TicketBuilder {
	if deadline == nil {
		b.ticket.Deadline = nil
		return b
	}
	d := *deadline
	b.ticket.Deadline = &d
	return b
}

func (b *TicketBuilder) WithImages(images []string) *TicketBuilder {
	b.ticket.Images = append([]string(nil), images...)
	return b
}

// SubmittedByTenant marks a public-form ticket, which always starts open
func (b *TicketBuilder) SubmittedByTenant() *TicketBuilder {
	b.ticket.IsTenantSubmitted = true
	b.ticket.Status = models.TicketOpen
	return b
}

// CreatedAt stamps both timestamps with the same instant
func (b *TicketBuilder) CreatedAt(now time.Time) *TicketBuilder {
	b.ticket.CreatedAt = now
	b.ticket.UpdatedAt = now
	return b
}

func (b *TicketBuilder) Build() *models.Ticket {
	t := *b.ticket
	return &t
}
