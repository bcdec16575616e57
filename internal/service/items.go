package service

import (
	"context"
	"strings"
	"time"

	errs "shareit/internal/errors"
	"shareit/internal/logger"
	"shareit/internal/models"
)

// ItemService owns the item catalog and the comment gate. Booking
// decoration and comment eligibility are delegated to the booking
// engine; free-text search goes to Elasticsearch when wired, SQL
// otherwise.
type ItemService struct {
	items    ItemStore
	users    UserStore
	requests RequestStore
	comments CommentStore
	bookings *BookingService

	publisher Publisher
	index     ItemIndex
}

func NewItemService(items ItemStore, users UserStore, requests RequestStore, comments CommentStore, bookings *BookingService, publisher Publisher, index ItemIndex) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		requests:  requests,
		comments:  comments,
		bookings:  bookings,
		publisher: publisher,
		index:     index,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, req *models.CreateItemRequest) (*models.ItemResponse, error) {
	if err := s.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	item := &models.Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	}
	s.attachRequest(ctx, item, req.RequestID)

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.reindex(ctx, item)

	resp := itemToResponse(item, nil, nil, nil)
	return &resp, nil
}

// Update applies a partial update. Only the owner may update; blank
// name/description are ignored.
func (s *ItemService) Update(ctx context.Context, itemID, userID int64, req *models.UpdateItemRequest) (*models.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.NotFound("item %d not found", itemID)
	}
	if item.OwnerID != userID {
		return nil, errs.Forbidden("only the owner can update item %d", itemID)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		item.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	s.attachRequest(ctx, item, req.RequestID)

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	s.reindex(ctx, item)

	comments, err := s.comments.GetAllByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := itemToResponse(item, nil, nil, comments)
	return &resp, nil
}

// Get returns the item decorated with comments, and with last/next
// booking references when the caller owns it (the booking lookups are
// owner-scoped, so other callers simply get none).
func (s *ItemService) Get(ctx context.Context, itemID, callerID int64) (*models.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errs.NotFound("item %d not found", itemID)
	}

	last, next, err := s.bookings.LastAndNextForItem(ctx, itemID, callerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.GetAllByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := itemToResponse(item, last, next, comments)
	return &resp, nil
}

// ListByOwner returns the owner's items, id ascending, each decorated
// with its booking references and comments.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]models.ItemResponse, error) {
	if err := s.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]

		last, next, err := s.bookings.LastAndNextForItem(ctx, item.ID, ownerID)
		if err != nil {
			return nil, err
		}
		comments, err := s.comments.GetAllByItemID(ctx, item.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, itemToResponse(item, last, next, comments))
	}
	return result, nil
}

// Search runs a free-text search over available items. Blank text
// returns an empty result without touching a store.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []models.ItemResponse{}, nil
	}

	var (
		items []models.Item
		err   error
	)
	if s.index != nil {
		items, err = s.index.SearchItems(ctx, text)
	} else {
		items, err = s.items.SearchByText(ctx, text)
	}
	if err != nil {
		return nil, err
	}

	result := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, itemToResponse(&items[i], nil, nil, nil))
	}
	return result, nil
}

// AddComment stores feedback on an item. The comment gate requires a
// non-rejected booking for the item and at least one booking window to
// have begun; the two failures are reported separately.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, req *models.CreateCommentRequest) (*models.CommentResponse, error) {
	if err := s.ensureUserExists(ctx, authorID); err != nil {
		return nil, err
	}

	exists, err := s.items.ExistsByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("item %d not found", itemID)
	}

	hasNonRejected, hasStarted, err := s.bookings.QualifyingHistory(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !hasNonRejected {
		return nil, errs.BadRequest("item %d has no booking history", itemID)
	}
	if !hasStarted {
		return nil, errs.BadRequest("no booking for item %d has started yet", itemID)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errs.NotFound("user %d not found", authorID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		Text:       req.Text,
		Created:    time.Now(),
		AuthorName: author.Name,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if perr := s.publisher.Publish(models.EventCommentAdded, models.CommentAddedEvent{
			CommentID: comment.ID,
			ItemID:    itemID,
			AuthorID:  authorID,
			Timestamp: time.Now(),
		}); perr != nil {
			logger.WithContext(ctx).Error("Failed to publish event",
				"error", perr,
				"event_type", models.EventCommentAdded)
		}
	}

	resp := models.CommentToResponse(comment)
	return &resp, nil
}

// attachRequest links the item to a wish-list request when the id is
// given and the request exists; an unknown id is silently ignored.
func (s *ItemService) attachRequest(ctx context.Context, item *models.Item, requestID *int64) {
	if requestID == nil {
		return
	}
	exists, err := s.requests.ExistsByID(ctx, *requestID)
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to look up request", "request_id", *requestID, "error", err)
		return
	}
	if exists {
		item.RequestID = requestID
	}
}

func (s *ItemService) reindex(ctx context.Context, item *models.Item) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexItem(ctx, item); err != nil {
		logger.WithContext(ctx).Error("Failed to index item", "item_id", item.ID, "error", err)
	}
}

func (s *ItemService) ensureUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("user %d not found", userID)
	}
	return nil
}

func itemToResponse(item *models.Item, last, next *models.Booking, comments []models.Comment) models.ItemResponse {
	resp := models.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
		LastBooking: models.BookingToShortResponse(last),
		NextBooking: models.BookingToShortResponse(next),
		Comments:    make([]models.CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, models.CommentToResponse(&comments[i]))
	}
	return resp
}
