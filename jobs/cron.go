package jobs

import (
	"context"
	"fmt"
	"time"

	"rento/models"
	"rento/services/logger"
	"rento/services/notification"

	"github.com/robfig/cron/v3"
)

// OverdueSource lists unresolved tickets past their deadline
type OverdueSource interface {
	Overdue(ctx context.Context, now time.Time) ([]models.Ticket, error)
}

// RemindOverdueTickets broadcasts one event per overdue ticket and returns the count
func RemindOverdueTickets(ctx context.Context, source OverdueSource, notifier notification.Service, now time.Time) (int, error) {
	tickets, err := source.Overdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list overdue tickets: %w", err)
	}
	sent := 0
	for i := range tickets {
		err := notifier.Publish(notification.Event{
			Type: notification.EventTicketOverdue,
			Data: tickets[i],
			At:   now,
		})
		if err != nil {
			return sent, fmt.Errorf("notify ticket %s: %w", tickets[i].ID, err)
		}
		sent++
	}
	return sent, nil
}

// InitCronJobs schedules the overdue ticket reminder and starts the scheduler
func InitCronJobs(c *cron.Cron, spec string, source OverdueSource, notifier notification.Service, log logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		now := time.Now().UTC()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		sent, err := RemindOverdueTickets(ctx, source, notifier, now)
		if err != nil {
			log.Error("overdue ticket reminder: %v", err)
			return
		}
		log.Info("overdue ticket reminder sent %d notifications", sent)
	})
	if err != nil {
		return fmt.Errorf("schedule ticket reminder %q: %w", spec, err)
	}

	c.Start()
	log.Info("cron jobs initialized")
	return nil
}
