package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Event types pushed to dashboard clients
const (
	EventTicketCreated  = "ticket.created"
	EventTicketUpdated  = "ticket.updated"
	EventTicketOverdue  = "ticket.overdue"
	EventBookingCreated = "booking.created"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

type Service interface {
	Publish(event Event) error
}

// MelodyService broadcasts events as JSON to every websocket session
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Publish(event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return s.m.Broadcast(msg)
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(Event) error { return nil }

// Recorder keeps published events in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
