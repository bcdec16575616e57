package service

import (
	"context"
	"sort"
	"strings"
	"time"

	errs "shareit/internal/errors"
	"shareit/internal/models"
)

// In-memory stores mirroring the SQL repositories' contracts, so the
// business rules can be exercised without a database.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) addUser(name, email string) *models.User {
	f.nextID++
	user := &models.User{ID: f.nextID, Name: name, Email: email}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return errs.Conflict("email %s is already registered", user.Email)
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = &models.User{ID: user.ID, Name: user.Name, Email: user.Email}
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetAll(ctx context.Context) ([]models.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]models.User, 0, len(ids))
	for _, id := range ids {
		result = append(result, *f.users[id])
	}
	return result, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return errs.Conflict("email %s is already registered", user.Email)
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeItemStore struct {
	items  map[int64]*models.Item
	nextID int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[int64]*models.Item)}
}

func (f *fakeItemStore) addItem(ownerID int64, name string, available bool) *models.Item {
	f.nextID++
	item := &models.Item{
		ID:          f.nextID,
		OwnerID:     ownerID,
		Name:        name,
		Description: name,
		Available:   available,
	}
	f.items[item.ID] = item
	return item
}

func (f *fakeItemStore) Create(ctx context.Context, item *models.Item) error {
	f.nextID++
	item.ID = f.nextID
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemStore) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) Update(ctx context.Context, item *models.Item) error {
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemStore) GetAllByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	var result []models.Item
	for _, item := range f.items {
		if item.OwnerID == ownerID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeItemStore) GetAllByRequestID(ctx context.Context, requestID int64) ([]models.Item, error) {
	var result []models.Item
	for _, item := range f.items {
		if item.RequestID != nil && *item.RequestID == requestID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeItemStore) SearchByText(ctx context.Context, text string) ([]models.Item, error) {
	needle := strings.ToLower(text)
	var result []models.Item
	for _, item := range f.items {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeItemStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

type fakeRequestStore struct {
	requests map[int64]*models.ItemRequest
	nextID   int64
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[int64]*models.ItemRequest)}
}

func (f *fakeRequestStore) Create(ctx context.Context, request *models.ItemRequest) error {
	f.nextID++
	request.ID = f.nextID
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestStore) GetAllByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	var result []models.ItemRequest
	for _, request := range f.requests {
		if request.RequesterID == requesterID {
			result = append(result, *request)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	return result, nil
}

func (f *fakeRequestStore) GetAllOthers(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error) {
	var result []models.ItemRequest
	for _, request := range f.requests {
		if request.RequesterID != userID {
			result = append(result, *request)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.After(result[j].Created) })
	return paginate(result, limit, offset), nil
}

func (f *fakeRequestStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := f.requests[id]
	return ok, nil
}

type fakeCommentStore struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*models.Comment)}
}

func (f *fakeCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentStore) GetAllByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	var result []models.Comment
	for _, comment := range f.comments {
		if comment.ItemID == itemID {
			result = append(result, *comment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created.Before(result[j].Created) })
	return result, nil
}

type fakeBookingStore struct {
	bookings map[int64]*models.Booking
	nextID   int64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[int64]*models.Booking)}
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingStore) TransitionStatus(ctx context.Context, id int64, to models.BookingStatus) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, errs.NotFound("booking %d not found", id)
	}
	if booking.Status == models.StatusApproved {
		return nil, errs.BadRequest("booking %d is already approved", id)
	}
	booking.Status = to
	copied := *booking
	return &copied, nil
}

func matchState(b *models.Booking, state models.BookingState, now time.Time) bool {
	switch state {
	case models.StatePast:
		return b.End.Before(now)
	case models.StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case models.StateFuture:
		return b.Start.After(now)
	case models.StateWaiting, models.StateApproved, models.StateRejected:
		return b.Status == state.Status()
	default:
		return true
	}
}

func (f *fakeBookingStore) list(match func(*models.Booking) bool, state models.BookingState, limit, offset int) []models.Booking {
	now := time.Now()
	var result []models.Booking
	for _, booking := range f.bookings {
		if match(booking) && matchState(booking, state, now) {
			result = append(result, *booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.After(result[j].Start) })
	return paginate(result, limit, offset)
}

func (f *fakeBookingStore) ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	return f.list(func(b *models.Booking) bool { return b.BookerID == bookerID }, state, limit, offset), nil
}

func (f *fakeBookingStore) ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	return f.list(func(b *models.Booking) bool { return b.ItemOwnerID == ownerID }, state, limit, offset), nil
}

func (f *fakeBookingStore) LastForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	now := time.Now()
	var last *models.Booking
	for _, booking := range f.bookings {
		if booking.ItemID != itemID || booking.ItemOwnerID != ownerID || booking.Start.After(now) {
			continue
		}
		if last == nil || booking.Start.After(last.Start) {
			last = booking
		}
	}
	if last == nil {
		return nil, nil
	}
	copied := *last
	return &copied, nil
}

func (f *fakeBookingStore) NextForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	now := time.Now()
	var next *models.Booking
	for _, booking := range f.bookings {
		if booking.ItemID != itemID || booking.ItemOwnerID != ownerID || !booking.End.After(now) {
			continue
		}
		if next == nil || booking.Start.Before(next.Start) {
			next = booking
		}
	}
	if next == nil {
		return nil, nil
	}
	copied := *next
	return &copied, nil
}

func (f *fakeBookingStore) HasNonRejectedForItem(ctx context.Context, itemID int64) (bool, error) {
	for _, booking := range f.bookings {
		if booking.ItemID == itemID && booking.Status != models.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) HasStartedForItem(ctx context.Context, itemID int64) (bool, error) {
	now := time.Now()
	for _, booking := range f.bookings {
		if booking.ItemID == itemID && !booking.Start.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

type fakePublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	subject string
	data    interface{}
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.published = append(f.published, publishedEvent{subject: subject, data: data})
	return nil
}
