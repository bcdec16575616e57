package service

import (
	"context"
	"time"

	errs "shareit/internal/errors"
	"shareit/internal/models"
)

// RequestService owns wish-list entries: items other users would like
// to see listed. Responses carry the items listed against each entry.
type RequestService struct {
	requests RequestStore
	users    UserStore
	items    ItemStore
}

func NewRequestService(requests RequestStore, users UserStore, items ItemStore) *RequestService {
	return &RequestService{requests: requests, users: users, items: items}
}

func (s *RequestService) Create(ctx context.Context, userID int64, req *models.CreateItemRequestRequest) (*models.ItemRequestResponse, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		RequesterID: userID,
		Description: req.Description,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	resp := requestToResponse(request, nil)
	return &resp, nil
}

// GetOwn lists the caller's wish-list entries, newest first.
func (s *RequestService) GetOwn(ctx context.Context, userID int64) ([]models.ItemRequestResponse, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.GetAllByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, requests)
}

// GetAllOthers pages through entries posted by other users, same
// pagination contract as booking listings.
func (s *RequestService) GetAllOthers(ctx context.Context, userID int64, page models.Page) ([]models.ItemRequestResponse, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	if !page.Valid() {
		return nil, errs.BadRequest("from and size must form a valid page")
	}

	requests, err := s.requests.GetAllOthers(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, requests)
}

func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*models.ItemRequestResponse, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errs.NotFound("request %d not found", requestID)
	}

	items, err := s.items.GetAllByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	resp := requestToResponse(request, items)
	return &resp, nil
}

func (s *RequestService) toResponses(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequestResponse, error) {
	result := make([]models.ItemRequestResponse, 0, len(requests))
	for i := range requests {
		items, err := s.items.GetAllByRequestID(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, requestToResponse(&requests[i], items))
	}
	return result, nil
}

func (s *RequestService) ensureUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("user %d not found", userID)
	}
	return nil
}

func requestToResponse(request *models.ItemRequest, items []models.Item) models.ItemRequestResponse {
	resp := models.ItemRequestResponse{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       make([]models.ItemResponse, 0, len(items)),
	}
	for i := range items {
		resp.Items = append(resp.Items, itemToResponse(&items[i], nil, nil, nil))
	}
	return resp
}
