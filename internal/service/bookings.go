package service

import (
	"context"
	"time"

	errs "shareit/internal/errors"
	"shareit/internal/logger"
	"shareit/internal/metrics"
	"shareit/internal/models"
)

// BookingService owns the booking lifecycle: creation validation, the
// WAITING -> APPROVED/REJECTED state machine, visibility rules and the
// temporal listing queries.
type BookingService struct {
	bookings  BookingStore
	users     UserStore
	items     ItemStore
	publisher Publisher
}

func NewBookingService(bookings BookingStore, users UserStore, items ItemStore, publisher Publisher) *BookingService {
	return &BookingService{
		bookings:  bookings,
		users:     users,
		items:     items,
		publisher: publisher,
	}
}

// Create validates and persists a new WAITING booking. Preconditions
// run in a fixed order and the first failure wins: user exists, item
// exists, item available, window valid, no self-booking. Window
// validation is shape-only (start strictly before end); windows in the
// past are accepted.
func (s *BookingService) Create(ctx context.Context, requesterID int64, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	if err := s.ensureUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.NotFound("item %d not found", req.ItemID)
	}
	if !item.Available {
		return nil, errs.BadRequest("item %d is not available", req.ItemID)
	}

	if req.Start.Equal(req.End) {
		return nil, errs.BadRequest("booking start must not equal booking end")
	}
	if req.Start.After(req.End) {
		return nil, errs.BadRequest("booking start is after booking end")
	}

	// Owners cannot book their own items. Reported as not-found rather
	// than forbidden so the response does not reveal ownership.
	if item.OwnerID == requesterID {
		return nil, errs.NotFound("item %d not found", req.ItemID)
	}

	booker, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, errs.NotFound("user %d not found", requesterID)
	}

	booking := &models.Booking{
		ItemID:      req.ItemID,
		BookerID:    requesterID,
		Start:       req.Start,
		End:         req.End,
		Status:      models.StatusWaiting,
		BookerName:  booker.Name,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		OwnerID:   item.OwnerID,
		Start:     booking.Start,
		End:       booking.End,
		Timestamp: time.Now(),
	})

	resp := models.BookingToResponse(booking)
	return &resp, nil
}

// SetApproval runs the owner-approval transition. Only the item's owner
// may transition, an APPROVED booking is terminal, and the store applies
// the transition atomically. A REJECTED booking can still be
// re-transitioned; historical behavior, kept on purpose.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.BookingResponse, error) {
	if err := s.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NotFound("booking %d not found", bookingID)
	}

	// Ownership mismatch reads as not-found, same info-hiding policy as
	// self-booking.
	if booking.ItemOwnerID != ownerID {
		return nil, errs.NotFound("booking %d not found for user %d", bookingID, ownerID)
	}

	to := models.StatusRejected
	if approved {
		to = models.StatusApproved
	}

	updated, err := s.bookings.TransitionStatus(ctx, bookingID, to)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(string(to))

	s.publish(ctx, models.EventBookingStatusChanged, models.BookingStatusChangedEvent{
		BookingID: updated.ID,
		ItemID:    updated.ItemID,
		BookerID:  updated.BookerID,
		Status:    updated.Status,
		Timestamp: time.Now(),
	})

	resp := models.BookingToResponse(updated)
	return &resp, nil
}

// Get returns a booking to its booker or the item's owner. Anyone else
// gets the same not-found as a nonexistent id.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*models.BookingResponse, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || (userID != booking.BookerID && userID != booking.ItemOwnerID) {
		return nil, errs.NotFound("booking %d not found for user %d", bookingID, userID)
	}

	resp := models.BookingToResponse(booking)
	return &resp, nil
}

// ListByBooker lists the booker's bookings filtered by state, newest
// start first.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, rawState string, page models.Page) ([]models.BookingResponse, error) {
	state, err := s.checkListParams(ctx, bookerID, rawState, page)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByBooker(ctx, bookerID, state, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

// ListByOwner lists bookings across all items the owner has listed.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, rawState string, page models.Page) ([]models.BookingResponse, error) {
	state, err := s.checkListParams(ctx, ownerID, rawState, page)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByOwner(ctx, ownerID, state, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

// LastAndNextForItem supplies the item catalog's display decoration:
// the latest begun booking and the earliest still-open one, both scoped
// to the given owner. Either may be nil.
func (s *BookingService) LastAndNextForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, *models.Booking, error) {
	last, err := s.bookings.LastForItem(ctx, itemID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	next, err := s.bookings.NextForItem(ctx, itemID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return last, next, nil
}

// QualifyingHistory answers the comment gate: whether the item has any
// non-rejected booking, and whether any booking window has begun.
func (s *BookingService) QualifyingHistory(ctx context.Context, itemID int64) (hasNonRejected, hasStarted bool, err error) {
	hasNonRejected, err = s.bookings.HasNonRejectedForItem(ctx, itemID)
	if err != nil {
		return false, false, err
	}
	hasStarted, err = s.bookings.HasStartedForItem(ctx, itemID)
	if err != nil {
		return false, false, err
	}
	return hasNonRejected, hasStarted, nil
}

func (s *BookingService) checkListParams(ctx context.Context, userID int64, rawState string, page models.Page) (models.BookingState, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return "", err
	}
	if !page.Valid() {
		return "", errs.BadRequest("from and size must form a valid page")
	}
	state, ok := models.ParseBookingState(rawState)
	if !ok {
		return "", errs.Unsupported("Unknown state: %s", rawState)
	}
	return state, nil
}

func (s *BookingService) ensureUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}

func toBookingResponses(bookings []models.Booking) []models.BookingResponse {
	result := make([]models.BookingResponse, len(bookings))
	for i := range bookings {
		result[i] = models.BookingToResponse(&bookings[i])
	}
	return result
}
