package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"shareit/internal/models"
	"shareit/internal/repository"
	"shareit/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos  *repository.Repositories
	search *search.ElasticsearchClient
}

func NewHandlers(repos *repository.Repositories, esClient *search.ElasticsearchClient) *Handlers {
	return &Handlers{
		repos:  repos,
		search: esClient,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event", "event", event)

	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		slog.Error("Failed to get booking", "booking_id", event.BookingID, "error", err)
		return
	}

	if booking != nil {
		// Owner gets notified that a new request is waiting for approval.
		slog.Info("Notify owner about pending booking",
			"owner_id", booking.ItemOwnerID,
			"booking_id", booking.ID,
			"item", booking.ItemName,
			"booker", booking.BookerName)
	}

	m.Ack()
}

func (h *Handlers) HandleBookingStatusChanged(m *stan.Msg) {
	var event models.BookingStatusChangedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking status changed event", "error", err)
		return
	}

	slog.Info("Processing booking status changed event", "event", event)

	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		slog.Error("Failed to get booking", "booking_id", event.BookingID, "error", err)
		return
	}

	if booking != nil {
		// Booker gets notified about the owner's decision.
		slog.Info("Notify booker about booking decision",
			"booker_id", booking.BookerID,
			"booking_id", booking.ID,
			"item", booking.ItemName,
			"status", booking.Status)
	}

	m.Ack()
}

func (h *Handlers) HandleBookingReminder(m *stan.Msg) {
	var event models.BookingReminderEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking reminder event", "error", err)
		return
	}

	slog.Info("Notify owner about stale pending booking",
		"owner_id", event.OwnerID,
		"booking_id", event.BookingID,
		"waiting_since", event.CreatedAt)

	m.Ack()
}

func (h *Handlers) HandleCommentAdded(m *stan.Msg) {
	var event models.CommentAddedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal comment added event", "error", err)
		return
	}

	slog.Info("Processing comment added event", "event", event)

	ctx := context.Background()
	item, err := h.repos.Items.GetByID(ctx, event.ItemID)
	if err != nil {
		slog.Error("Failed to get item", "item_id", event.ItemID, "error", err)
		return
	}

	if item != nil {
		slog.Info("Notify owner about new comment",
			"owner_id", item.OwnerID,
			"item_id", item.ID,
			"comment_id", event.CommentID,
			"author_id", event.AuthorID)

		// Keep the search index in sync with the commented item.
		if h.search != nil {
			if err := h.search.IndexItem(ctx, item); err != nil {
				slog.Error("Failed to reindex item", "item_id", item.ID, "error", err)
			}
		}
	}

	m.Ack()
}
