package dto

import (
	"time"

	"rento/models"
	"rento/services"
)

type TicketRequest struct {
	PropertyID        string     `json:"propertyId" binding:"required"`
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Status            string     `json:"status" binding:"omitempty,oneof=open in-progress closed"`
	AssignedTo        string     `json:"assignedTo"`
	CostEstimate      float64    `json:"costEstimate" binding:"gte=0"`
	Deadline          *time.Time `json:"deadline"`
	Urgency           string     `json:"urgency" binding:"omitempty,oneof=low medium high"`
	IsTenantSubmitted bool       `json:"isTenantSubmitted"`
	Images            []string   `json:"images"`
}

func (r TicketRequest) ToModel() models.Ticket {
	return models.Ticket{
		PropertyID:        r.PropertyID,
		Title:             r.Title,
		Description:       r.Description,
		Status:            models.TicketStatus(r.Status),
		AssignedTo:        r.AssignedTo,
		CostEstimate:      r.CostEstimate,
		Deadline:          r.Deadline,
		Urgency:           models.Urgency(r.Urgency),
		IsTenantSubmitted: r.IsTenantSubmitted,
		Images:            r.Images,
	}
}

type TicketUpdateRequest struct {
	PropertyID   *string    `json:"propertyId" binding:"omitempty,min=1"`
	Title        *string    `json:"title" binding:"omitempty,min=1"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status" binding:"omitempty,oneof=open in-progress closed"`
	AssignedTo   *string    `json:"assignedTo"`
	CostEstimate *float64   `json:"costEstimate" binding:"omitempty,gte=0"`
	Deadline     *time.Time `json:"deadline"`
	Urgency      *string    `json:"urgency" binding:"omitempty,oneof=low medium high"`
	Images       []string   `json:"images"`
}

func (r TicketUpdateRequest) Patch() models.TicketPatch {
	p := models.TicketPatch{
		PropertyID:   r.PropertyID,
		Title:        r.Title,
		Description:  r.Description,
		AssignedTo:   r.AssignedTo,
		CostEstimate: r.CostEstimate,
		Deadline:     r.Deadline,
		Images:       r.Images,
	}
	if r.Status != nil {
		s := models.TicketStatus(*r.Status)
		p.Status = &s
	}
	if r.Urgency != nil {
		u := models.Urgency(*r.Urgency)
		p.Urgency = &u
	}
	return p
}

// TenantTicketRequest is the public form; status and assignee are not accepted
type TenantTicketRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Urgency      string     `json:"urgency" binding:"omitempty,oneof=low medium high"`
	CostEstimate float64    `json:"costEstimate" binding:"gte=0"`
	Deadline     *time.Time `json:"deadline"`
	Images       []string   `json:"images"`
}

func (r TenantTicketRequest) ToModel() models.Ticket {
	return models.Ticket{
		Title:        r.Title,
		Description:  r.Description,
		Urgency:      models.Urgency(r.Urgency),
		CostEstimate: r.CostEstimate,
		Deadline:     r.Deadline,
		Images:       r.Images,
	}
}

type TicketFilterQuery struct {
	Q          string `form:"q"`
	Status     string `form:"status" binding:"omitempty,oneof=open in-progress closed"`
	PropertyID string `form:"propertyId"`
	Source     string `form:"source" binding:"omitempty,oneof=all tenant internal"`
}

func (q TicketFilterQuery) ToQuery() services.TicketQuery {
	return services.TicketQuery{
		Search:     q.Q,
		Status:     models.TicketStatus(q.Status),
		PropertyID: q.PropertyID,
		Source:     q.Source,
	}
}
