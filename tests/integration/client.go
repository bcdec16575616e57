package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"shareit/internal/middleware"
	"shareit/internal/models"
)

// TestClient provides methods for testing the API
type TestClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request with the sharer header and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}, userID int64) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(middleware.SharerUserHeader, strconv.FormatInt(userID, 10))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// CreateUser creates a new user
func (c *TestClient) CreateUser(t *testing.T, name, email string) *models.UserResponse {
	req := models.CreateUserRequest{
		Name:  name,
		Email: email,
	}

	resp := c.makeRequest(t, "POST", "/users", req, 0)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var user models.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("Failed to decode user response: %v", err)
	}

	return &user
}

// CreateItem creates a new item owned by userID
func (c *TestClient) CreateItem(t *testing.T, userID int64, name, description string, available bool) *models.ItemResponse {
	req := models.CreateItemRequest{
		Name:        name,
		Description: description,
		Available:   &available,
	}

	resp := c.makeRequest(t, "POST", "/items", req, userID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var item models.ItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("Failed to decode item response: %v", err)
	}

	return &item
}

// CreateBooking creates a new booking on behalf of userID
func (c *TestClient) CreateBooking(t *testing.T, userID, itemID int64, start, end time.Time) *models.BookingResponse {
	req := models.CreateBookingRequest{
		ItemID: itemID,
		Start:  start,
		End:    end,
	}

	resp := c.makeRequest(t, "POST", "/bookings", req, userID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var booking models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// SetApproval approves or rejects a booking on behalf of the owner
func (c *TestClient) SetApproval(t *testing.T, ownerID, bookingID int64, approved bool) *models.BookingResponse {
	path := fmt.Sprintf("/bookings/%d?approved=%t", bookingID, approved)
	resp := c.makeRequest(t, "PATCH", path, nil, ownerID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var booking models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// ListBookings lists bookings made by userID
func (c *TestClient) ListBookings(t *testing.T, userID int64, state string) []models.BookingResponse {
	path := "/bookings"
	if state != "" {
		path += "?state=" + state
	}

	resp := c.makeRequest(t, "GET", path, nil, userID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var bookings []models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		t.Fatalf("Failed to decode bookings response: %v", err)
	}

	return bookings
}

// ListOwnerBookings lists bookings for items owned by userID
func (c *TestClient) ListOwnerBookings(t *testing.T, userID int64, state string) []models.BookingResponse {
	path := "/bookings/owner"
	if state != "" {
		path += "?state=" + state
	}

	resp := c.makeRequest(t, "GET", path, nil, userID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var bookings []models.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		t.Fatalf("Failed to decode bookings response: %v", err)
	}

	return bookings
}

// SearchItems searches available items by text
func (c *TestClient) SearchItems(t *testing.T, text string) []models.ItemResponse {
	resp := c.makeRequest(t, "GET", "/items/search?text="+text, nil, 0)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var items []models.ItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("Failed to decode items response: %v", err)
	}

	return items
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil, 0)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
