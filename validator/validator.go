package validator

import (
	"fmt"
	"strings"
	"sync"

	"rento/errors"
	"rento/models"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterBindings adds the custom tags used by request DTOs to gin's validator.
// It runs once; later calls return the first result.
func RegisterBindings() error {
	registerOnce.Do(func() {
		registerErr = registerOn(binding.Validator.Engine())
	})
	return registerErr
}

func registerOn(engine interface{}) error {
	v, ok := engine.(*playground.Validate)
	if !ok {
		return fmt.Errorf("register validators: unsupported engine %T", engine)
	}
	err := v.RegisterValidation("calendardate", func(fl playground.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("register calendardate: %w", err)
	}
	return nil
}

// ValidateProperty checks a property before it is stored
func ValidateProperty(p *models.Property) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "property name is required", nil)
	}
	if strings.TrimSpace(p.Address) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "property address is required", nil)
	}
	if err := p.ValidateStatus(); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), nil)
	}
	if p.PricePerNight < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "price per night must not be negative", nil)
	}
	return nil
}

// ValidateTicket checks a ticket draft; empty status and urgency take defaults later
func ValidateTicket(t *models.Ticket) error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ticket title is required", nil)
	}
	if t.Status != "" && !t.Status.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "status must be open, in-progress or closed", nil)
	}
	if t.Urgency != "" && !t.Urgency.Valid() {
		return errors.NewAppError(errors.ErrCodeValidation, "urgency must be low, medium or high", nil)
	}
	if t.CostEstimate < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "cost estimate must not be negative", nil)
	}
	return nil
}

// ValidateBookingRange rejects stays that end before they start
func ValidateBookingRange(r models.DateRange) error {
	if r.Start.After(r.End) {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "start date must not be after end date", nil)
	}
	return nil
}
