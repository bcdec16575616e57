package integration

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"shareit/internal/models"
)

const (
	APIBaseURL = "http://localhost:9090"
)

// baseURL returns the API base URL, overridable via environment
func baseURL() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	return APIBaseURL
}

// requireServer skips the test when no API server is reachable
func requireServer(t *testing.T) *TestClient {
	t.Helper()

	client := NewTestClient(baseURL())

	probe := &http.Client{Timeout: 2 * time.Second}
	resp, err := probe.Get(client.BaseURL + "/health")
	if err != nil {
		t.Skipf("API server not reachable at %s: %v", client.BaseURL, err)
	}
	resp.Body.Close()

	return client
}

// uniqueEmail generates an email that will not collide across test runs
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// AssertBookingExists checks if a booking exists in the list
func AssertBookingExists(t *testing.T, bookings []models.BookingResponse, bookingID int64) {
	for _, booking := range bookings {
		if booking.ID == bookingID {
			return
		}
	}
	t.Fatalf("Booking with ID %d not found in bookings list", bookingID)
}

// AssertBookingStatus verifies that a booking has the expected status
func AssertBookingStatus(t *testing.T, bookings []models.BookingResponse, bookingID int64, expected models.BookingStatus) {
	for _, booking := range bookings {
		if booking.ID == bookingID {
			if booking.Status != expected {
				t.Fatalf("Booking %d has status '%s', expected '%s'", bookingID, booking.Status, expected)
			}
			return
		}
	}
	t.Fatalf("Booking with ID %d not found in bookings list", bookingID)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
