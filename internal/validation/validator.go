package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"shareit/internal/middleware"
	"shareit/internal/models"
)

// APIValidator - валидатор работоспособности API
type APIValidator struct {
	baseURL string
	userID  int64
	itemID  int64
}

// NewAPIValidator создает новый валидатор
func NewAPIValidator(baseURL string) *APIValidator {
	return &APIValidator{baseURL: baseURL}
}

// ValidateAll проверяет все endpoints на работоспособность
func (v *APIValidator) ValidateAll() error {
	log.Println("Начинаю валидацию API endpoints...")

	if err := v.validateUsers(); err != nil {
		return fmt.Errorf("Users validation failed: %w", err)
	}

	if err := v.validateItems(); err != nil {
		return fmt.Errorf("Items validation failed: %w", err)
	}

	if err := v.validateBookings(); err != nil {
		return fmt.Errorf("Bookings validation failed: %w", err)
	}

	if err := v.validateRequests(); err != nil {
		return fmt.Errorf("Requests validation failed: %w", err)
	}

	log.Println("✅ Все endpoints прошли валидацию успешно!")
	return nil
}

func (v *APIValidator) validateUsers() error {
	log.Println("Проверяю Users endpoints...")

	// POST /users
	reqBody := models.CreateUserRequest{
		Name:  "Валидатор",
		Email: fmt.Sprintf("validator-%d@example.com", time.Now().UnixNano()),
	}

	resp, err := v.makeRequest("POST", "/users", reqBody, 0)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /users: expected 201, got %d", resp.StatusCode)
	}

	var createResp models.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return fmt.Errorf("POST /users: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if createResp.ID == 0 {
		return fmt.Errorf("POST /users: expected non-zero ID")
	}
	v.userID = createResp.ID

	// GET /users
	resp, err = v.makeRequest("GET", "/users", nil, 0)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /users: expected 200, got %d", resp.StatusCode)
	}

	var listResp []models.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return fmt.Errorf("GET /users: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if len(listResp) == 0 {
		return fmt.Errorf("GET /users: expected non-empty list")
	}

	log.Println("✅ Users endpoints валидны")
	return nil
}

func (v *APIValidator) validateItems() error {
	log.Println("Проверяю Items endpoints...")

	available := true
	reqBody := models.CreateItemRequest{
		Name:        "Дрель валидатора",
		Description: "Проверочная дрель",
		Available:   &available,
	}

	// POST /items
	resp, err := v.makeRequest("POST", "/items", reqBody, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /items: expected 201, got %d", resp.StatusCode)
	}

	var createResp models.ItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return fmt.Errorf("POST /items: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if createResp.ID == 0 {
		return fmt.Errorf("POST /items: expected non-zero ID")
	}
	v.itemID = createResp.ID

	// GET /items
	resp, err = v.makeRequest("GET", "/items", nil, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /items: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// GET /items/search
	resp, err = v.makeRequest("GET", "/items/search?text=дрель", nil, 0)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /items/search: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("✅ Items endpoints валидны")
	return nil
}

func (v *APIValidator) validateBookings() error {
	log.Println("Проверяю Bookings endpoints...")

	// Бронирующий не может быть владельцем вещи
	booker := models.CreateUserRequest{
		Name:  "Бронирующий",
		Email: fmt.Sprintf("booker-%d@example.com", time.Now().UnixNano()),
	}

	resp, err := v.makeRequest("POST", "/users", booker, 0)
	if err != nil {
		return err
	}
	var bookerResp models.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&bookerResp); err != nil {
		return fmt.Errorf("POST /users: failed to decode response: %w", err)
	}
	resp.Body.Close()

	reqBody := models.CreateBookingRequest{
		ItemID: v.itemID,
		Start:  time.Now().Add(time.Hour),
		End:    time.Now().Add(2 * time.Hour),
	}

	// POST /bookings
	resp, err = v.makeRequest("POST", "/bookings", reqBody, bookerResp.ID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /bookings: expected 201, got %d", resp.StatusCode)
	}

	var createResp models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return fmt.Errorf("POST /bookings: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if createResp.Status != models.StatusWaiting {
		return fmt.Errorf("POST /bookings: expected WAITING status, got %s", createResp.Status)
	}

	// PATCH /bookings/{bookingId}?approved=true
	path := fmt.Sprintf("/bookings/%d?approved=true", createResp.ID)
	resp, err = v.makeRequest("PATCH", path, nil, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PATCH /bookings/{id}: expected 200, got %d", resp.StatusCode)
	}

	var approved models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&approved); err != nil {
		return fmt.Errorf("PATCH /bookings/{id}: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if approved.Status != models.StatusApproved {
		return fmt.Errorf("PATCH /bookings/{id}: expected APPROVED status, got %s", approved.Status)
	}

	// GET /bookings?state=ALL
	resp, err = v.makeRequest("GET", "/bookings?state=ALL", nil, bookerResp.ID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /bookings: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// GET /bookings/owner
	resp, err = v.makeRequest("GET", "/bookings/owner", nil, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /bookings/owner: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("✅ Bookings endpoints валидны")
	return nil
}

func (v *APIValidator) validateRequests() error {
	log.Println("Проверяю Requests endpoints...")

	reqBody := models.CreateItemRequestRequest{
		Description: "Нужна отвертка",
	}

	// POST /requests
	resp, err := v.makeRequest("POST", "/requests", reqBody, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /requests: expected 201, got %d", resp.StatusCode)
	}

	var createResp models.ItemRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return fmt.Errorf("POST /requests: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if createResp.ID == 0 {
		return fmt.Errorf("POST /requests: expected non-zero ID")
	}

	// GET /requests
	resp, err = v.makeRequest("GET", "/requests", nil, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /requests: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// GET /requests/all
	resp, err = v.makeRequest("GET", "/requests/all?from=0&size=10", nil, v.userID)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /requests/all: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	log.Println("✅ Requests endpoints валидны")
	return nil
}

func (v *APIValidator) makeRequest(method, path string, body interface{}, userID int64) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	if userID != 0 {
		req.Header.Set(middleware.SharerUserHeader, strconv.FormatInt(userID, 10))
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation запускает валидацию API
func RunValidation() {
	baseURL := os.Getenv("VALIDATE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}

	validator := NewAPIValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("❌ Валидация не пройдена: %v", err)
	}
}
