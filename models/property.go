package models

import "fmt"

type PropertyStatus string

const (
	PropertyVacant   PropertyStatus = "vacant"
	PropertyOccupied PropertyStatus = "occupied"
)

func (s PropertyStatus) Valid() bool {
	return s == PropertyVacant || s == PropertyOccupied
}

type Property struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Address          string         `json:"address"`
	Description      string         `json:"description"`
	Status           PropertyStatus `json:"status"`
	PricePerNight    float64        `json:"pricePerNight"`
	IsDynamicPricing bool           `json:"isDynamicPricing"`
	Images           []string       `json:"images"`
	Bookings         []Booking      `json:"bookings,omitempty"`
	Tickets          []Ticket       `json:"tickets,omitempty"`
}

func (p *Property) ValidateStatus() error {
	if !p.Status.Valid() {
		return fmt.Errorf("invalid status: %q, must be vacant or occupied", p.Status)
	}
	return nil
}

// FindBooking returns the index of the booking with id, or -1
func (p *Property) FindBooking(id string) int {
	for i := range p.Bookings {
		if p.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}
