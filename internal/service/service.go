// Package service holds the business rules. Collaborator stores are
// consumed through narrow interfaces so the booking state machine and
// its query contracts can be exercised without a database.
package service

import (
	"context"

	"shareit/internal/messaging"
	"shareit/internal/models"
	"shareit/internal/repository"
	"shareit/internal/search"
)

// UserStore is the user directory consumed by every service.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ItemStore is the item catalog store.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	GetAllByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	GetAllByRequestID(ctx context.Context, requestID int64) ([]models.Item, error)
	SearchByText(ctx context.Context, text string) ([]models.Item, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// RequestStore is the wish-list store.
type RequestStore interface {
	Create(ctx context.Context, request *models.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetAllByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	GetAllOthers(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// BookingStore owns booking rows. List results are ordered by start
// descending; TransitionStatus must be atomic with respect to
// concurrent transitions on the same booking.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	TransitionStatus(ctx context.Context, id int64, to models.BookingStatus) (*models.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error)
	LastForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error)
	NextForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error)
	HasNonRejectedForItem(ctx context.Context, itemID int64) (bool, error)
	HasStartedForItem(ctx context.Context, itemID int64) (bool, error)
}

// CommentStore owns item comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetAllByItemID(ctx context.Context, itemID int64) ([]models.Comment, error)
}

// Publisher emits domain events; publishing is best-effort and never
// fails the calling operation.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// ItemIndex is the optional full-text search index for items.
type ItemIndex interface {
	IndexItem(ctx context.Context, item *models.Item) error
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
}

type Services struct {
	Users    *UserService
	Items    *ItemService
	Bookings *BookingService
	Requests *RequestService
}

// NewServices wires the service layer over SQL repositories. The NATS
// client and Elasticsearch client may be nil; the affected features
// degrade gracefully (no events, SQL search fallback).
func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, esClient *search.ElasticsearchClient) *Services {
	var publisher Publisher
	if natsClient != nil {
		publisher = natsClient
	}

	var index ItemIndex
	if esClient != nil {
		index = esClient
	}

	bookingService := NewBookingService(repos.Bookings, repos.Users, repos.Items, publisher)
	userService := NewUserService(repos.Users)
	itemService := NewItemService(repos.Items, repos.Users, repos.Requests, repos.Comments, bookingService, publisher, index)
	requestService := NewRequestService(repos.Requests, repos.Users, repos.Items)

	return &Services{
		Users:    userService,
		Items:    itemService,
		Bookings: bookingService,
		Requests: requestService,
	}
}
