package models

// Booking reserves a property for an inclusive range of calendar days
type Booking struct {
	ID            string  `json:"id"`
	GuestName     string  `json:"guestName"`
	StartDate     Date    `json:"startDate"`
	EndDate       Date    `json:"endDate"`
	PricePerNight float64 `json:"pricePerNight"`
}

// Nights counts the calendar days the booking covers
func (b Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate.Time).Hours()/24) + 1
}

// Total is the stay price at the booked nightly rate
func (b Booking) Total() float64 {
	return float64(b.Nights()) * b.PricePerNight
}

// Covers reports whether day falls within the booking bounds
func (b Booking) Covers(day Date) bool {
	return !day.Before(b.StartDate) && !day.After(b.EndDate)
}

// DateRange is a candidate stay checked against existing bookings
type DateRange struct {
	Start Date
	End   Date
}

func (b Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}
