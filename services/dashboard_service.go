package services

import (
	"context"
	"fmt"

	"rento/models"
)

// DashboardStats summarizes the landlord overview page
type DashboardStats struct {
	TotalProperties    int               `json:"totalProperties"`
	VacantProperties   int               `json:"vacantProperties"`
	OccupiedProperties int               `json:"occupiedProperties"`
	VacancyRate        string            `json:"vacancyRate"`
	TicketsToSolve     int               `json:"ticketsToSolve"`
	UrgentTickets      int               `json:"urgentTickets"`
	OverdueTickets     int               `json:"overdueTickets"`
	Properties         []PropertySummary `json:"properties"`
}

type PropertySummary struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Status      models.PropertyStatus `json:"status"`
	VacancyNote string                `json:"vacancyNote,omitempty"`
	OpenTickets int                   `json:"openTickets"`
}

type DashboardService struct {
	properties *PropertyService
	tickets    *TicketService
	clock      Clock
}

func NewDashboardService(properties *PropertyService, tickets *TicketService, clock Clock) *DashboardService {
	if clock == nil {
		clock = RealClock()
	}
	return &DashboardService{properties: properties, tickets: tickets, clock: clock}
}

// VacancyRate is vacant/total as a percentage with two decimals
func VacancyRate(vacant, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(vacant)/float64(total)*100)
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	props, err := s.properties.List(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	today := models.DateOf(now)

	openByProperty := make(map[string]int)
	stats := &DashboardStats{TotalProperties: len(props)}
	for i := range tickets {
		t := &tickets[i]
		if t.Status == models.TicketClosed {
			continue
		}
		stats.TicketsToSolve++
		openByProperty[t.PropertyID]++
		if t.Urgency == models.UrgencyHigh {
			stats.UrgentTickets++
		}
		if t.IsOverdue(now) {
			stats.OverdueTickets++
		}
	}

	stats.Properties = make([]PropertySummary, 0, len(props))
	for i := range props {
		p := &props[i]
		switch p.Status {
		case models.PropertyVacant:
			stats.VacantProperties++
		case models.PropertyOccupied:
			stats.OccupiedProperties++
		}
		stats.Properties = append(stats.Properties, PropertySummary{
			ID:          p.ID,
			Name:        p.Name,
			Status:      p.Status,
			VacancyNote: VacancyNote(p, today),
			OpenTickets: openByProperty[p.ID],
		})
	}
	stats.VacancyRate = VacancyRate(stats.VacantProperties, stats.TotalProperties)
	return stats, nil
}
