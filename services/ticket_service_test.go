package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rento/constants"
	"rento/errors"
	"rento/models"
	"rento/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketService_LeakyFaucetTimestamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := env.tickets.Create(ctx, models.Ticket{
		ID:         "client-id",
		PropertyID: "1",
		Title:      "Leaky Faucet",
		CreatedAt:  stale,
		UpdatedAt:  stale,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "client-id", created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, env.clock.Now(), created.CreatedAt)
	assert.Equal(t, models.TicketOpen, created.Status)
	assert.Equal(t, models.UrgencyMedium, created.Urgency)

	env.clock.Advance(time.Hour)
	status := models.TicketInProgress
	updated, err := env.tickets.Update(ctx, created.ID, models.TicketPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Leaky Faucet", updated.Title)
	assert.Equal(t, models.TicketInProgress, updated.Status)

	require.Len(t, env.notifier.Events(), 2)
	assert.Equal(t, notification.EventTicketCreated, env.notifier.Events()[0].Type)
	assert.Equal(t, notification.EventTicketUpdated, env.notifier.Events()[1].Type)
}

func TestTicketService_ConcurrentCreates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const writers = 50

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.tickets.Create(ctx, models.Ticket{
				PropertyID: "1",
				Title:      fmt.Sprintf("Issue %d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	tickets, err := env.tickets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, writers)

	ids := make(map[string]bool, writers)
	for _, ticket := range tickets {
		ids[ticket.ID] = true
	}
	assert.Len(t, ids, writers)
	assert.Len(t, env.notifier.Events(), writers)
}

func TestTicketService_FirstReadCreatesEmptyBlob(t *testing.T) {
	env := newTestEnv(t)

	tickets, err := env.tickets.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)

	data, err := env.store.Get(context.Background(), constants.KeyTickets)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestTicketService_AddDeleteRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.tickets.Create(ctx, models.Ticket{PropertyID: "1", Title: "Broken AC"})
	require.NoError(t, err)
	before, err := env.store.Get(ctx, constants.KeyTickets)
	require.NoError(t, err)

	added, err := env.tickets.Create(ctx, models.Ticket{PropertyID: "2", Title: "Squeaky door"})
	require.NoError(t, err)
	require.NoError(t, env.tickets.Delete(ctx, added.ID))

	after, err := env.store.Get(ctx, constants.KeyTickets)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTicketService_MissingIDLeavesBlobUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.tickets.Create(ctx, models.Ticket{PropertyID: "1", Title: "Broken AC"})
	require.NoError(t, err)
	before, err := env.store.Get(ctx, constants.KeyTickets)
	require.NoError(t, err)

	title := "Changed"
	_, err = env.tickets.Update(ctx, "missing", models.TicketPatch{Title: &title})
	assert.ErrorIs(t, err, errors.ErrTicketNotFound)
	assert.ErrorIs(t, env.tickets.Delete(ctx, "missing"), errors.ErrTicketNotFound)

	after, err := env.store.Get(ctx, constants.KeyTickets)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTicketService_SubmitTenantTicket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ticket, err := env.tickets.SubmitTenantTicket(ctx, "2", models.Ticket{
		PropertyID: "4",
		Title:      "No hot water",
		Status:     models.TicketClosed,
		AssignedTo: "Plumber Joe",
		Urgency:    models.UrgencyHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "2", ticket.PropertyID)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.True(t, ticket.IsTenantSubmitted)
	assert.Empty(t, ticket.AssignedTo)
	assert.Equal(t, models.UrgencyHigh, ticket.Urgency)

	_, err = env.tickets.SubmitTenantTicket(ctx, "missing", models.Ticket{Title: "x"})
	assert.ErrorIs(t, err, errors.ErrPropertyNotFound)
}

func TestTicketService_Filter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mk := func(ticket models.Ticket) *models.Ticket {
		created, err := env.tickets.Create(ctx, ticket)
		require.NoError(t, err)
		env.clock.Advance(time.Minute)
		return created
	}
	faucet := mk(models.Ticket{PropertyID: "1", Title: "Leaky Faucet", AssignedTo: "Maria"})
	roof := mk(models.Ticket{PropertyID: "2", Title: "Roof tiles", Status: models.TicketClosed})
	orphan := mk(models.Ticket{PropertyID: "99", Title: "Gate"})
	tenant, err := env.tickets.SubmitTenantTicket(ctx, "3", models.Ticket{Title: "Noisy fridge"})
	require.NoError(t, err)

	ids := func(q TicketQuery) []string {
		list, err := env.tickets.Filter(ctx, q)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, t := range list {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{tenant.ID, orphan.ID, roof.ID, faucet.ID}, ids(TicketQuery{}))
	assert.Equal(t, []string{faucet.ID}, ids(TicketQuery{Search: "maria"}))
	assert.Equal(t, []string{faucet.ID}, ids(TicketQuery{Search: "beach"}))
	assert.Equal(t, []string{orphan.ID}, ids(TicketQuery{Search: "unknown property"}))
	assert.Equal(t, []string{roof.ID}, ids(TicketQuery{Status: models.TicketClosed}))
	assert.Equal(t, []string{roof.ID}, ids(TicketQuery{PropertyID: "2"}))
	assert.Equal(t, []string{tenant.ID}, ids(TicketQuery{Source: constants.TicketSourceTenant}))
	assert.Len(t, ids(TicketQuery{Source: constants.TicketSourceInternal}), 3)
}

func TestTicketService_Overdue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	past := env.clock.Now().Add(-24 * time.Hour)
	future := env.clock.Now().Add(24 * time.Hour)

	late, err := env.tickets.Create(ctx, models.Ticket{Title: "Late", Deadline: &past})
	require.NoError(t, err)
	_, err = env.tickets.Create(ctx, models.Ticket{Title: "Done", Deadline: &past, Status: models.TicketClosed})
	require.NoError(t, err)
	_, err = env.tickets.Create(ctx, models.Ticket{Title: "Soon", Deadline: &future})
	require.NoError(t, err)
	_, err = env.tickets.Create(ctx, models.Ticket{Title: "Whenever"})
	require.NoError(t, err)

	overdue, err := env.tickets.Overdue(ctx, env.clock.Now())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
}

func TestTicketService_ListByProperty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.tickets.Create(ctx, models.Ticket{PropertyID: "1", Title: "A"})
	require.NoError(t, err)
	_, err = env.tickets.Create(ctx, models.Ticket{PropertyID: "2", Title: "B"})
	require.NoError(t, err)

	list, err := env.tickets.ListByProperty(ctx, "2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Title)
}
