package jobs

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/messaging"
	"shareit/internal/models"
	"shareit/internal/repository"
)

const PendingReminderAge = 24 * time.Hour

// PendingReminderJob nudges owners about bookings that have been
// waiting for a decision for too long. It never touches booking state,
// an owner decision is the only thing that moves a booking out of
// WAITING.
type PendingReminderJob struct {
	bookingRepo *repository.BookingRepository
	natsClient  *messaging.NATSClient
	ticker      *time.Ticker
	done        chan bool
}

// NewPendingReminderJob creates a new pending reminder job
func NewPendingReminderJob(bookingRepo *repository.BookingRepository, natsClient *messaging.NATSClient) *PendingReminderJob {
	return &PendingReminderJob{
		bookingRepo: bookingRepo,
		natsClient:  natsClient,
		done:        make(chan bool),
	}
}

// Start begins the background job that checks for stale bookings every hour
func (j *PendingReminderJob) Start(ctx context.Context) {
	slog.Info("Starting pending reminder job", "check_interval", "1h", "reminder_age", PendingReminderAge)

	j.ticker = time.NewTicker(time.Hour)

	// Run initial check immediately
	go j.checkPendingBookings(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.checkPendingBookings(ctx)
			case <-j.done:
				slog.Info("Pending reminder job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *PendingReminderJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

// checkPendingBookings finds WAITING bookings older than the reminder age
func (j *PendingReminderJob) checkPendingBookings(ctx context.Context) {
	cutoff := time.Now().Add(-PendingReminderAge)

	stale, err := j.bookingRepo.ListStaleWaiting(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to get stale waiting bookings", "error", err)
		return
	}

	if len(stale) == 0 {
		slog.Debug("No stale waiting bookings found")
		return
	}

	slog.Info("Found stale waiting bookings", "count", len(stale))

	for _, booking := range stale {
		event := models.BookingReminderEvent{
			BookingID: booking.ID,
			ItemID:    booking.ItemID,
			OwnerID:   booking.ItemOwnerID,
			CreatedAt: booking.CreatedAt,
			Timestamp: time.Now(),
		}

		if err := j.natsClient.Publish(models.EventBookingReminder, event); err != nil {
			slog.Error("Failed to publish booking reminder event",
				"error", err,
				"booking_id", booking.ID)
			continue
		}

		slog.Info("Published booking reminder",
			"booking_id", booking.ID,
			"owner_id", booking.ItemOwnerID,
			"waiting_since", booking.CreatedAt)
	}
}
