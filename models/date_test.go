package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.June, 1), d)

	d, err = ParseDate("2024-06-01T22:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", d.String())

	_, err = ParseDate("June 1")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	b := Booking{ID: "b1", GuestName: "Ana", StartDate: NewDate(2024, 6, 1), EndDate: NewDate(2024, 6, 5)}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"startDate":"2024-06-01"`)

	var decoded Booking
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-06-01T00:00:00.000Z","endDate":"2024-06-05"}`), &decoded))
	assert.True(t, decoded.StartDate.Equal(b.StartDate))
	assert.True(t, decoded.EndDate.Equal(b.EndDate))
	assert.Equal(t, 5, decoded.Nights())
	decoded.PricePerNight = 120
	assert.Equal(t, float64(600), decoded.Total())

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":20240601}`), &decoded))
}

func TestBookingCovers(t *testing.T) {
	b := Booking{StartDate: NewDate(2024, 6, 1), EndDate: NewDate(2024, 6, 5)}
	assert.True(t, b.Covers(NewDate(2024, 6, 1)))
	assert.True(t, b.Covers(NewDate(2024, 6, 5)))
	assert.False(t, b.Covers(NewDate(2024, 6, 6)))
}

func TestTicketPatchApply(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ticket := Ticket{ID: "t1", Title: "Leaky Faucet", Status: TicketOpen, CreatedAt: created}
	status := TicketClosed

	TicketPatch{Status: &status}.Apply(&ticket)
	assert.Equal(t, TicketClosed, ticket.Status)
	assert.Equal(t, "Leaky Faucet", ticket.Title)
	assert.Equal(t, created, ticket.CreatedAt)
}

func TestTicketIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	ticket := Ticket{Status: TicketOpen, Deadline: &past}
	assert.True(t, ticket.IsOverdue(now))
	ticket.Status = TicketClosed
	assert.False(t, ticket.IsOverdue(now))
	ticket.Deadline = nil
	ticket.Status = TicketOpen
	assert.False(t, ticket.IsOverdue(now))
}
