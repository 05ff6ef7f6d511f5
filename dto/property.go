package dto

import (
	"rento/models"
	"rento/services"
)

type PropertyRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name" binding:"required"`
	Address          string   `json:"address" binding:"required"`
	Description      string   `json:"description"`
	Status           string   `json:"status" binding:"required,oneof=vacant occupied"`
	PricePerNight    float64  `json:"pricePerNight" binding:"gte=0"`
	IsDynamicPricing bool     `json:"isDynamicPricing"`
	Images           []string `json:"images" binding:"omitempty,dive,required"`
}

// ToModel builds a property; bookings are kept from existing when updating
func (r PropertyRequest) ToModel(existing *models.Property) models.Property {
	p := models.Property{
		ID:               r.ID,
		Name:             r.Name,
		Address:          r.Address,
		Description:      r.Description,
		Status:           models.PropertyStatus(r.Status),
		PricePerNight:    r.PricePerNight,
		IsDynamicPricing: r.IsDynamicPricing,
		Images:           r.Images,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if existing != nil {
		p.ID = existing.ID
		p.Bookings = existing.Bookings
		p.Tickets = existing.Tickets
	}
	return p
}

type PropertyResponse struct {
	models.Property
	VacancyNote string `json:"vacancyNote,omitempty"`
}

func NewPropertyResponse(p models.Property, today models.Date) PropertyResponse {
	return PropertyResponse{Property: p, VacancyNote: services.VacancyNote(&p, today)}
}

func NewPropertyResponses(props []models.Property, today models.Date) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, NewPropertyResponse(p, today))
	}
	return out
}

type PropertySearchResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Fuzzy      bool               `json:"fuzzy"`
	Suggestion string             `json:"suggestion,omitempty"`
}

// TenantPropertyResponse is the public view shown on the tenant form
type TenantPropertyResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Images  []string `json:"images"`
}

func NewTenantPropertyResponse(p *models.Property) TenantPropertyResponse {
	return TenantPropertyResponse{ID: p.ID, Name: p.Name, Address: p.Address, Images: p.Images}
}

type TenantLinkResponse struct {
	PropertyID string `json:"propertyId"`
	URL        string `json:"url"`
}
