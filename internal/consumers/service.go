package consumers

import (
	"context"
	"log/slog"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/messaging"
	"shareit/internal/models"
	"shareit/internal/repository"
	"shareit/internal/search"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Connect to NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	// Create repositories
	repos := repository.NewRepositories(db, nil)

	// Search client is optional for consumers
	var esClient *search.ElasticsearchClient
	if cfg.SearchEnabled {
		esClient, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, reindexing disabled", "error", err)
			esClient = nil
		}
	}

	// Create handlers
	handlers := NewHandlers(repos, esClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	// Subscribe to booking events
	_, err := cs.nats.SubscribeQueue(models.EventBookingCreated, "consumers", cs.handlers.HandleBookingCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventBookingStatusChanged, "consumers", cs.handlers.HandleBookingStatusChanged)
	if err != nil {
		return err
	}

	// Subscribe to comment events
	_, err = cs.nats.SubscribeQueue(models.EventCommentAdded, "consumers", cs.handlers.HandleCommentAdded)
	if err != nil {
		return err
	}

	// Subscribe to reminder events published by the background job
	_, err = cs.nats.SubscribeQueue(models.EventBookingReminder, "consumers", cs.handlers.HandleBookingReminder)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

// Bookings exposes the booking repository for background jobs
func (cs *ConsumerService) Bookings() *repository.BookingRepository {
	return cs.repos.Bookings
}

// NATS exposes the messaging client for background jobs
func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
