package services

import (
	"sync"
	"testing"
	"time"

	"rento/models"
	"rento/services/logger"
	"rento/services/notification"
	"rento/storage"

	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store      *storage.MemoryStore
	clock      *fakeClock
	notifier   *notification.Recorder
	properties *PropertyService
	bookings   *BookingService
	tickets    *TicketService
	users      *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.NewNop()
	env := &testEnv{
		store:    storage.NewMemoryStore(),
		clock:    newFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
		notifier: &notification.Recorder{},
	}
	env.properties = NewPropertyService(PropertyServiceOptions{Store: env.store, Logger: log})
	env.bookings = NewBookingService(BookingServiceOptions{
		Properties: env.properties,
		Notifier:   env.notifier,
		Clock:      env.clock,
		Logger:     log,
	})
	env.tickets = NewTicketService(TicketServiceOptions{
		Store:      env.store,
		Properties: env.properties,
		Notifier:   env.notifier,
		Clock:      env.clock,
		Logger:     log,
	})
	env.users = NewUserService(UserServiceOptions{
		Store:    env.store,
		Clock:    env.clock,
		Logger:   log,
		HashCost: bcrypt.MinCost,
	})
	return env
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
