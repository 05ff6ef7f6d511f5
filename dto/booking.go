package dto

import "rento/models"

type BookingRequest struct {
	GuestName     string  `json:"guestName" binding:"required"`
	StartDate     string  `json:"startDate" binding:"required,calendardate"`
	EndDate       string  `json:"endDate" binding:"required,calendardate"`
	PricePerNight float64 `json:"pricePerNight" binding:"gte=0"`
}

// ToModel assumes both dates passed the calendardate check
func (r BookingRequest) ToModel() (models.Booking, error) {
	start, err := models.ParseDate(r.StartDate)
	if err != nil {
		return models.Booking{}, err
	}
	end, err := models.ParseDate(r.EndDate)
	if err != nil {
		return models.Booking{}, err
	}
	return models.Booking{
		GuestName:     r.GuestName,
		StartDate:     start,
		EndDate:       end,
		PricePerNight: r.PricePerNight,
	}, nil
}

type CalendarQuery struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// BookingResponse adds the stay length and price to a stored booking
type BookingResponse struct {
	models.Booking
	Nights int     `json:"nights"`
	Total  float64 `json:"total"`
}

func NewBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{Booking: b, Nights: b.Nights(), Total: b.Total()}
}

func NewBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
