package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "shareit/internal/errors"
	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/service"
)

// Map-backed stores implementing the service interfaces, just enough to
// drive the HTTP edge through real services.

type stubUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return errs.Conflict("email %s is already registered", user.Email)
		}
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubUsers) GetAll(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, *user)
	}
	return result, nil
}

func (s *stubUsers) Update(ctx context.Context, user *models.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUsers) Delete(ctx context.Context, id int64) error {
	delete(s.users, id)
	return nil
}

func (s *stubUsers) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

type stubItems struct {
	items  map[int64]*models.Item
	nextID int64
}

func (s *stubItems) Create(ctx context.Context, item *models.Item) error {
	s.nextID++
	item.ID = s.nextID
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItems) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *stubItems) Update(ctx context.Context, item *models.Item) error {
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItems) GetAllByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	var result []models.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (s *stubItems) GetAllByRequestID(ctx context.Context, requestID int64) ([]models.Item, error) {
	return nil, nil
}

func (s *stubItems) SearchByText(ctx context.Context, text string) ([]models.Item, error) {
	var result []models.Item
	for _, item := range s.items {
		if item.Available {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (s *stubItems) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	return ok, nil
}

type stubBookings struct {
	bookings map[int64]*models.Booking
	nextID   int64
}

func (s *stubBookings) Create(ctx context.Context, booking *models.Booking) error {
	s.nextID++
	booking.ID = s.nextID
	booking.CreatedAt = time.Now()
	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *stubBookings) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (s *stubBookings) TransitionStatus(ctx context.Context, id int64, to models.BookingStatus) (*models.Booking, error) {
	booking, ok := s.bookings[id]
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

func (s *stubBookings) ListByBooker(ctx context.Context, bookerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	var result []models.Booking
	for _, booking := range s.bookings {
		if booking.BookerID == bookerID {
			result = append(result, *booking)
		}
	}
	return result, nil
}

func (s *stubBookings) ListByOwner(ctx context.Context, ownerID int64, state models.BookingState, limit, offset int) ([]models.Booking, error) {
	var result []models.Booking
	for _, booking := range s.bookings {
		if booking.ItemOwnerID == ownerID {
			result = append(result, *booking)
		}
	}
	return result, nil
}

func (s *stubBookings) LastForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) NextForItem(ctx context.Context, itemID, ownerID int64) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) HasNonRejectedForItem(ctx context.Context, itemID int64) (bool, error) {
	for _, booking := range s.bookings {
		if booking.ItemID == itemID && booking.Status != models.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBookings) HasStartedForItem(ctx context.Context, itemID int64) (bool, error) {
	now := time.Now()
	for _, booking := range s.bookings {
		if booking.ItemID == itemID && !booking.Start.After(now) {
			return true, nil
		}
	}
	return false, nil
}

type stubRequests struct{}

func (stubRequests) Create(ctx context.Context, request *models.ItemRequest) error { return nil }
func (stubRequests) GetByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	return nil, nil
}
func (stubRequests) GetAllByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	return nil, nil
}
func (stubRequests) GetAllOthers(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error) {
	return nil, nil
}
func (stubRequests) ExistsByID(ctx context.Context, id int64) (bool, error) { return false, nil }

type stubComments struct {
	comments []models.Comment
	nextID   int64
}

func (s *stubComments) Create(ctx context.Context, comment *models.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *stubComments) GetAllByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	var result []models.Comment
	for _, comment := range s.comments {
		if comment.ItemID == itemID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type testBackend struct {
	users    *stubUsers
	items    *stubItems
	bookings *stubBookings
	router   *gin.Engine

	owner  *models.User
	booker *models.User
	item   *models.Item
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &stubUsers{users: make(map[int64]*models.User)}
	items := &stubItems{items: make(map[int64]*models.Item)}
	bookings := &stubBookings{bookings: make(map[int64]*models.Booking)}
	comments := &stubComments{}

	bookingService := service.NewBookingService(bookings, users, items, nil)
	services := &service.Services{
		Users:    service.NewUserService(users),
		Items:    service.NewItemService(items, users, stubRequests{}, comments, bookingService, nil, nil),
		Bookings: bookingService,
		Requests: service.NewRequestService(stubRequests{}, users, items),
	}

	h := NewHandlers(services)

	router := gin.New()
	router.POST("/users", h.CreateUser)
	router.GET("/users/:userId", h.GetUser)
	router.PATCH("/users/:userId", h.UpdateUser)
	router.POST("/items", h.CreateItem)
	router.GET("/items/search", h.SearchItems)
	router.POST("/items/:itemId/comment", h.AddComment)
	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings", h.ListBookingsByBooker)
	router.GET("/bookings/:bookingId", h.GetBooking)
	router.PATCH("/bookings/:bookingId", h.SetApproval)

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, users.Create(context.Background(), owner))
	booker := &models.User{Name: "Booker", Email: "booker@example.com"}
	require.NoError(t, users.Create(context.Background(), booker))

	item := &models.Item{OwnerID: owner.ID, Name: "Drill", Description: "Cordless", Available: true}
	require.NoError(t, items.Create(context.Background(), item))

	return &testBackend{
		users:    users,
		items:    items,
		bookings: bookings,
		router:   router,
		owner:    owner,
		booker:   booker,
		item:     item,
	}
}

func (b *testBackend) do(t *testing.T, method, path string, body interface{}, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(middleware.SharerUserHeader, strconv.FormatInt(userID, 10))
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload["error"]
}

func TestCreateBooking_Created(t *testing.T) {
	b := newTestBackend(t)
	start := time.Now().Add(time.Hour)

	w := b.do(t, "POST", "/bookings", models.CreateBookingRequest{
		ItemID: b.item.ID,
		Start:  start,
		End:    start.Add(time.Hour),
	}, b.booker.ID)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusWaiting, resp.Status)
	assert.Equal(t, b.booker.ID, resp.Booker.ID)
}

func TestCreateBooking_MissingHeader(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "POST", "/bookings", models.CreateBookingRequest{
		ItemID: b.item.ID,
		Start:  time.Now().Add(time.Hour),
		End:    time.Now().Add(2 * time.Hour),
	}, 0)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), middleware.SharerUserHeader)
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	b := newTestBackend(t)

	req := httptest.NewRequest("POST", "/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set(middleware.SharerUserHeader, strconv.FormatInt(b.booker.ID, 10))
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetApproval_StatusMapping(t *testing.T) {
	b := newTestBackend(t)
	start := time.Now().Add(time.Hour)

	created := b.do(t, "POST", "/bookings", models.CreateBookingRequest{
		ItemID: b.item.ID, Start: start, End: start.Add(time.Hour),
	}, b.booker.ID)
	require.Equal(t, http.StatusCreated, created.Code)

	var booking models.BookingResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &booking))
	path := "/bookings/" + strconv.FormatInt(booking.ID, 10)

	// Non-owner approval reads as 404.
	w := b.do(t, "PATCH", path+"?approved=true", nil, b.booker.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing approved parameter is a 400.
	w = b.do(t, "PATCH", path, nil, b.owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Owner approves.
	w = b.do(t, "PATCH", path+"?approved=true", nil, b.owner.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Second transition on an approved booking is a 400.
	w = b.do(t, "PATCH", path+"?approved=false", nil, b.owner.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "already approved")
}

func TestGetBooking_NotFoundAndBadPath(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "GET", "/bookings/404", nil, b.booker.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = b.do(t, "GET", "/bookings/abc", nil, b.booker.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "bookingId")
}

func TestListBookings_UnknownStateIs400(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "GET", "/bookings?state=FOO", nil, b.booker.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown state: FOO", errorMessage(t, w))
}

func TestListBookings_Defaults(t *testing.T) {
	b := newTestBackend(t)

	// No state/from/size at all must fall back to ALL / 0 / 5.
	w := b.do(t, "GET", "/bookings", nil, b.booker.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = b.do(t, "GET", "/bookings?from=abc", nil, b.booker.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_ConflictIs409(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "POST", "/users", models.CreateUserRequest{
		Name: "Dup", Email: "owner@example.com",
	}, 0)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_ValidationIs400(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "POST", "/users", map[string]string{"name": "No Email"}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = b.do(t, "POST", "/users", map[string]string{"name": "Bad", "email": "not-an-email"}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchItems_NoHeaderRequired(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "GET", "/items/search?text=drill", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, b.item.ID, items[0].ID)
}

func TestAddComment_GateIs400(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "POST", "/items/"+strconv.FormatInt(b.item.ID, 10)+"/comment",
		models.CreateCommentRequest{Text: "nice"}, b.booker.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "no booking history")
}

func TestCreateItem_RequiresAvailable(t *testing.T) {
	b := newTestBackend(t)

	w := b.do(t, "POST", "/items", map[string]string{
		"name": "Saw", "description": "Hand saw",
	}, b.owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
