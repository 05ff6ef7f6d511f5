package services

import (
	"context"
	"testing"
	"time"

	"rento/errors"
	"rento/models"
	"rento/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id, guest, start, end string) models.Booking {
	return models.Booking{ID: id, GuestName: guest, StartDate: date(start), EndDate: date(end)}
}

func TestOverlaps(t *testing.T) {
	existing := booking("b1", "Ana", "2024-06-01", "2024-06-05")

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"start inside", "2024-06-04", "2024-06-08", true},
		{"end inside", "2024-05-28", "2024-06-01", true},
		{"encloses", "2024-05-30", "2024-06-07", true},
		{"same range", "2024-06-01", "2024-06-05", true},
		{"inside", "2024-06-02", "2024-06-03", true},
		{"touches end day", "2024-06-05", "2024-06-06", true},
		{"day after", "2024-06-06", "2024-06-10", false},
		{"before", "2024-05-20", "2024-05-31", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := models.DateRange{Start: date(tc.start), End: date(tc.end)}
			assert.Equal(t, tc.want, Overlaps(c, existing))
		})
	}
}

func TestConflicts_Empty(t *testing.T) {
	c := models.DateRange{Start: date("2024-06-01"), End: date("2024-06-02")}
	assert.False(t, Conflicts(c, nil))
}

func TestBookedDates(t *testing.T) {
	dates := BookedDates([]models.Booking{
		booking("b1", "Ana", "2024-06-01", "2024-06-03"),
		booking("b2", "Ben", "2024-06-10", "2024-06-10"),
	})

	got := make([]string, 0, len(dates))
	for _, d := range dates {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-10"}, got)
}

func TestBookingService_JuneScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.properties.Add(ctx, models.Property{ID: "p1", Name: "Test House", PricePerNight: 200, Status: models.PropertyVacant})
	require.NoError(t, err)

	first, err := env.bookings.Add(ctx, "p1", booking("", "Ana", "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	assert.Equal(t, float64(200), first.PricePerNight)

	_, err = env.bookings.Add(ctx, "p1", booking("", "Ben", "2024-06-04", "2024-06-08"))
	assert.ErrorIs(t, err, errors.ErrBookingConflict)

	p, err := env.properties.Get(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p.Bookings, 1)
	assert.Equal(t, first.ID, p.Bookings[0].ID)

	second, err := env.bookings.Add(ctx, "p1", booking("", "Cara", "2024-06-06", "2024-06-10"))
	require.NoError(t, err)

	p, err = env.properties.Get(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p.Bookings, 2)
	assert.Equal(t, second.ID, p.Bookings[1].ID)
	assert.Equal(t, "2024-06-06", p.Bookings[1].StartDate.String())
}

func TestBookingService_PublishesCreatedEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.bookings.Add(ctx, "2", booking("", "Ana", "2024-06-10", "2024-06-12"))
	require.NoError(t, err)
	_, err = env.bookings.Add(ctx, "2", booking("", "Ben", "2024-06-11", "2024-06-13"))
	require.ErrorIs(t, err, errors.ErrBookingConflict)

	events := env.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventBookingCreated, events[0].Type)
	assert.Equal(t, env.clock.Now(), events[0].At)
	payload, ok := events[0].Data.(BookingEvent)
	require.True(t, ok)
	assert.Equal(t, "2", payload.PropertyID)
	assert.Equal(t, b.ID, payload.Booking.ID)
}

func TestBookingService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.bookings.Add(ctx, "2", booking("", "  ", "2024-06-01", "2024-06-02"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRequiredField, errors.GetAppError(err).Code)

	_, err = env.bookings.Add(ctx, "2", booking("", "Ana", "2024-06-05", "2024-06-01"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)

	_, err = env.bookings.Add(ctx, "missing", booking("", "Ana", "2024-06-01", "2024-06-02"))
	assert.ErrorIs(t, err, errors.ErrPropertyNotFound)
	assert.Equal(t, 0, env.store.Puts())
}

func TestBookingService_KeepsExplicitPrice(t *testing.T) {
	env := newTestEnv(t)
	b := booking("", "Ana", "2024-07-01", "2024-07-03")
	b.PricePerNight = 150

	got, err := env.bookings.Add(context.Background(), "2", b)
	require.NoError(t, err)
	assert.Equal(t, float64(150), got.PricePerNight)
}

func TestBookingService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b, err := env.bookings.Add(ctx, "4", booking("", "Ana", "2024-06-01", "2024-06-02"))
	require.NoError(t, err)

	assert.ErrorIs(t, env.bookings.Delete(ctx, "4", "nope"), errors.ErrBookingNotFound)
	require.NoError(t, env.bookings.Delete(ctx, "4", b.ID))

	list, err := env.bookings.List(ctx, "4")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCalendar(t *testing.T) {
	p := &models.Property{Bookings: []models.Booking{
		booking("b1", "Ana", "2024-05-30", "2024-06-02"),
		booking("b2", "Ben", "2024-06-29", "2024-07-03"),
	}}

	days := Calendar(p, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, days, 30)
	assert.Equal(t, "2024-06-01", days[0].Date.String())
	assert.True(t, days[0].Booked)
	assert.Equal(t, "Ana", days[1].GuestName)
	assert.False(t, days[2].Booked)
	assert.Equal(t, "b2", days[29].BookingID)
}

func TestVacancyNote(t *testing.T) {
	today := date("2024-06-01")
	p := &models.Property{Status: models.PropertyVacant, Bookings: []models.Booking{
		booking("b1", "Ana", "2024-06-20", "2024-06-22"),
		booking("b2", "Ben", "2024-06-10", "2024-06-12"),
		booking("b0", "Old", "2024-05-01", "2024-05-03"),
	}}
	assert.Equal(t, "Vacant until Jun 10, 2024", VacancyNote(p, today))

	p.Bookings = nil
	assert.Equal(t, "No future bookings", VacancyNote(p, today))

	p.Status = models.PropertyOccupied
	assert.Empty(t, VacancyNote(p, today))
}
