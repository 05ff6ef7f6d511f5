package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rento/constants"
	"rento/errors"
	"rento/metrics"
	"rento/models"
	"rento/services/logger"
	"rento/services/notification"

	"github.com/google/uuid"
)

// vacancyLayout renders dates like "Jun 1, 2024"
const vacancyLayout = "Jan 2, 2006"

// Overlaps applies the inclusive-bounds overlap rule between a candidate
// stay and one existing booking.
func Overlaps(c models.DateRange, e models.Booking) bool {
	startInside := !c.Start.After(e.EndDate) && !c.Start.Before(e.StartDate)
	endInside := !c.End.After(e.EndDate) && !c.End.Before(e.StartDate)
	encloses := !c.Start.After(e.StartDate) && !c.End.Before(e.EndDate)
	return startInside || endInside || encloses
}

// Conflicts reports whether the candidate overlaps any existing booking
func Conflicts(c models.DateRange, existing []models.Booking) bool {
	_, found := FindConflict(c, existing)
	return found
}

// FindConflict returns the first existing booking the candidate overlaps
func FindConflict(c models.DateRange, existing []models.Booking) (models.Booking, bool) {
	for _, e := range existing {
		if Overlaps(c, e) {
			return e, true
		}
	}
	return models.Booking{}, false
}

// BookedDates expands every booking into each calendar day it covers,
// both bounds included, in booking order.
func BookedDates(bookings []models.Booking) []models.Date {
	dates := make([]models.Date, 0)
	for _, b := range bookings {
		for day := b.StartDate; !day.After(b.EndDate); day = day.AddDays(1) {
			dates = append(dates, day)
		}
	}
	return dates
}

// CalendarDay is one cell of a month view
type CalendarDay struct {
	Date      models.Date `json:"date"`
	Booked    bool        `json:"booked"`
	BookingID string      `json:"bookingId,omitempty"`
	GuestName string      `json:"guestName,omitempty"`
}

// Calendar lays out every day of month with the booking covering it, if any
func Calendar(p *models.Property, month time.Time) []CalendarDay {
	firstDay := models.NewDate(month.Year(), month.Month(), 1)
	lastDay := models.Date{Time: firstDay.AddDate(0, 1, -1)}

	days := make([]CalendarDay, 0, 31)
	for day := firstDay; !day.After(lastDay); day = day.AddDays(1) {
		cell := CalendarDay{Date: day}
		for _, b := range p.Bookings {
			if b.Covers(day) {
				cell.Booked = true
				cell.BookingID = b.ID
				cell.GuestName = b.GuestName
				break
			}
		}
		days = append(days, cell)
	}
	return days
}

// NextBooking is the earliest booking starting after today
func NextBooking(p *models.Property, today models.Date) (models.Booking, bool) {
	var next models.Booking
	found := false
	for _, b := range p.Bookings {
		if !b.StartDate.After(today) {
			continue
		}
		if !found || b.StartDate.Before(next.StartDate) {
			next = b
			found = true
		}
	}
	return next, found
}

// VacancyNote describes how long a vacant property stays free
func VacancyNote(p *models.Property, today models.Date) string {
	if p.Status != models.PropertyVacant {
		return ""
	}
	next, ok := NextBooking(p, today)
	if !ok {
		return constants.NoFutureBookings
	}
	return "Vacant until " + next.StartDate.Format(vacancyLayout)
}

type BookingService struct {
	properties *PropertyService
	notifier   notification.Service
	clock      Clock
	logger     logger.Logger
}

type BookingServiceOptions struct {
	Properties *PropertyService
	Notifier   notification.Service
	Clock      Clock
	Logger     logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.Nop{}
	}
	return &BookingService{
		properties: opts.Properties,
		notifier:   opts.Notifier,
		clock:      opts.Clock,
		logger:     opts.Logger,
	}
}

// BookingEvent is the payload of booking notifications
type BookingEvent struct {
	PropertyID string         `json:"propertyId"`
	Booking    models.Booking `json:"booking"`
}

// List returns the property's bookings ordered by start date
func (s *BookingService) List(ctx context.Context, propertyID string) ([]models.Booking, error) {
	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	bookings := append([]models.Booking{}, p.Bookings...)
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartDate.Before(bookings[j].StartDate)
	})
	return bookings, nil
}

// Add validates and stores a booking unless it overlaps an existing one.
// A zero price takes the property's nightly price.
func (s *BookingService) Add(ctx context.Context, propertyID string, b models.Booking) (*models.Booking, error) {
	b.GuestName = strings.TrimSpace(b.GuestName)
	if b.GuestName == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "guest name is required", errors.ErrMissingRequired)
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "start and end dates are required", errors.ErrMissingRequired)
	}
	if b.StartDate.After(b.EndDate) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "start date must not be after end date", errors.ErrInvalidInput)
	}
	if b.PricePerNight < 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "price per night must not be negative", errors.ErrInvalidInput)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	_, err := s.properties.Modify(ctx, propertyID, func(p *models.Property) error {
		if existing, found := FindConflict(b.Range(), p.Bookings); found {
			return fmt.Errorf("%w: %s (%s to %s)", errors.ErrBookingConflict,
				existing.GuestName, existing.StartDate, existing.EndDate)
		}
		if b.PricePerNight == 0 {
			b.PricePerNight = p.PricePerNight
		}
		p.Bookings = append(p.Bookings, b)
		return nil
	})
	if err != nil {
		metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn("booking for property %s rejected: %v", propertyID, err)
		return nil, err
	}
	metrics.BookingsTotal.WithLabelValues("created").Inc()
	s.logger.Info("booking %s added to property %s", b.ID, propertyID)
	err = s.notifier.Publish(notification.Event{
		Type: notification.EventBookingCreated,
		Data: BookingEvent{PropertyID: propertyID, Booking: b},
		At:   s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("publish %s for booking %s: %v", notification.EventBookingCreated, b.ID, err)
	}
	return &b, nil
}

func (s *BookingService) Delete(ctx context.Context, propertyID, bookingID string) error {
	_, err := s.properties.Modify(ctx, propertyID, func(p *models.Property) error {
		idx := p.FindBooking(bookingID)
		if idx < 0 {
			return errors.ErrBookingNotFound
		}
		p.Bookings = append(p.Bookings[:idx], p.Bookings[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	metrics.BookingsTotal.WithLabelValues("deleted").Inc()
	s.logger.Info("booking %s removed from property %s", bookingID, propertyID)
	return nil
}

func (s *BookingService) BookedDates(ctx context.Context, propertyID string) ([]models.Date, error) {
	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return BookedDates(p.Bookings), nil
}

func (s *BookingService) Calendar(ctx context.Context, propertyID string, month time.Time) ([]CalendarDay, error) {
	p, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return Calendar(p, month), nil
}
