package models

import (
	"fmt"
	"time"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Ticket is a maintenance request against a property
type Ticket struct {
	ID                string       `json:"id"`
	PropertyID        string       `json:"propertyId"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Status            TicketStatus `json:"status"`
	AssignedTo        string       `json:"assignedTo,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	CostEstimate      float64      `json:"costEstimate"`
	Deadline          *time.Time   `json:"deadline,omitempty"`
	Urgency           Urgency      `json:"urgency"`
	IsTenantSubmitted bool         `json:"isTenantSubmitted"`
	Images            []string     `json:"images,omitempty"`
}

func (t *Ticket) Validate() error {
	if !t.Status.Valid() {
		return fmt.Errorf("invalid status: %q", t.Status)
	}
	if !t.Urgency.Valid() {
		return fmt.Errorf("invalid urgency: %q", t.Urgency)
	}
	if t.CostEstimate < 0 {
		return fmt.Errorf("cost estimate must not be negative")
	}
	return nil
}

// IsOverdue reports whether an unresolved ticket passed its deadline
func (t *Ticket) IsOverdue(now time.Time) bool {
	return t.Status != TicketClosed && t.Deadline != nil && t.Deadline.Before(now)
}

// TicketPatch holds the fields a caller may change; nil means keep
type TicketPatch struct {
	PropertyID   *string       `json:"propertyId,omitempty"`
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Status       *TicketStatus `json:"status,omitempty"`
	AssignedTo   *string       `json:"assignedTo,omitempty"`
	CostEstimate *float64      `json:"costEstimate,omitempty"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Urgency      *Urgency      `json:"urgency,omitempty"`
	Images       []string      `json:"images,omitempty"`
}

// Apply merges the patch into t. Identity and timestamps are left alone.
func (p TicketPatch) Apply(t *Ticket) {
	if p.PropertyID != nil {
		t.PropertyID = *p.PropertyID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.CostEstimate != nil {
		t.CostEstimate = *p.CostEstimate
	}
	if p.Deadline != nil {
		d := *p.Deadline
		t.Deadline = &d
	}
	if p.Urgency != nil {
		t.Urgency = *p.Urgency
	}
	if p.Images != nil {
		t.Images = append([]string(nil), p.Images...)
	}
}
