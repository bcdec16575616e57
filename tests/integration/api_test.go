package integration

import (
	"testing"
	"time"

	"shareit/internal/models"
)

// TestAPI_HealthCheck tests the API health endpoint
func TestAPI_HealthCheck(t *testing.T) {
	client := requireServer(t)

	LogTestStep(t, "Testing API health check")
	client.HealthCheck(t)
	LogTestResult(t, "API is healthy and responding")
}

// TestAPI_BookingLifecycle tests the complete booking flow
func TestAPI_BookingLifecycle(t *testing.T) {
	client := requireServer(t)

	LogTestStep(t, "Testing complete booking lifecycle")

	// 1. Owner and booker
	owner := client.CreateUser(t, "Владелец", uniqueEmail("owner"))
	booker := client.CreateUser(t, "Бронирующий", uniqueEmail("booker"))
	LogTestResult(t, "Created owner %d and booker %d", owner.ID, booker.ID)

	// 2. Owner publishes an item
	item := client.CreateItem(t, owner.ID, "Дрель", "Аккумуляторная дрель", true)
	LogTestResult(t, "Created item %d", item.ID)

	// 3. Booker requests the item
	start := time.Now().Add(time.Hour).Truncate(time.Second)
	booking := client.CreateBooking(t, booker.ID, item.ID, start, start.Add(2*time.Hour))
	if booking.Status != models.StatusWaiting {
		t.Fatalf("New booking has status %s, expected WAITING", booking.Status)
	}
	LogTestResult(t, "Created booking %d in WAITING", booking.ID)

	// 4. Owner approves
	approved := client.SetApproval(t, owner.ID, booking.ID, true)
	if approved.Status != models.StatusApproved {
		t.Fatalf("Approved booking has status %s, expected APPROVED", approved.Status)
	}
	LogTestResult(t, "Booking %d approved", booking.ID)

	// 5. Both sides see it in their lists
	bookerView := client.ListBookings(t, booker.ID, "ALL")
	AssertBookingStatus(t, bookerView, booking.ID, models.StatusApproved)

	ownerView := client.ListOwnerBookings(t, owner.ID, "ALL")
	AssertBookingExists(t, ownerView, booking.ID)

	LogTestResult(t, "Booking visible to both booker and owner")
}

// TestAPI_RejectedBooking tests the rejection branch
func TestAPI_RejectedBooking(t *testing.T) {
	client := requireServer(t)

	owner := client.CreateUser(t, "Владелец", uniqueEmail("owner"))
	booker := client.CreateUser(t, "Бронирующий", uniqueEmail("booker"))
	item := client.CreateItem(t, owner.ID, "Палатка", "Четырехместная палатка", true)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	booking := client.CreateBooking(t, booker.ID, item.ID, start, start.Add(48*time.Hour))

	rejected := client.SetApproval(t, owner.ID, booking.ID, false)
	if rejected.Status != models.StatusRejected {
		t.Fatalf("Rejected booking has status %s, expected REJECTED", rejected.Status)
	}

	rejectedList := client.ListBookings(t, booker.ID, "REJECTED")
	AssertBookingExists(t, rejectedList, booking.ID)
}

// TestAPI_TemporalFilters tests FUTURE and WAITING state filters
func TestAPI_TemporalFilters(t *testing.T) {
	client := requireServer(t)

	owner := client.CreateUser(t, "Владелец", uniqueEmail("owner"))
	booker := client.CreateUser(t, "Бронирующий", uniqueEmail("booker"))
	item := client.CreateItem(t, owner.ID, "Проектор", "Домашний проектор", true)

	start := time.Now().Add(time.Hour).Truncate(time.Second)
	booking := client.CreateBooking(t, booker.ID, item.ID, start, start.Add(time.Hour))

	future := client.ListBookings(t, booker.ID, "FUTURE")
	AssertBookingExists(t, future, booking.ID)

	waiting := client.ListBookings(t, booker.ID, "WAITING")
	AssertBookingExists(t, waiting, booking.ID)

	past := client.ListBookings(t, booker.ID, "PAST")
	for _, b := range past {
		if b.ID == booking.ID {
			t.Fatalf("Future booking %d returned by PAST filter", booking.ID)
		}
	}
}

// TestAPI_SearchItems tests the search endpoint
func TestAPI_SearchItems(t *testing.T) {
	client := requireServer(t)

	owner := client.CreateUser(t, "Владелец", uniqueEmail("owner"))
	client.CreateItem(t, owner.ID, "Уникальный штатив", "Карбоновый штатив для камеры", true)

	results := client.SearchItems(t, "штатив")
	if len(results) == 0 {
		t.Fatal("Expected at least one search result for 'штатив'")
	}

	empty := client.SearchItems(t, "")
	if len(empty) != 0 {
		t.Fatalf("Expected empty result for blank search, got %d items", len(empty))
	}
}
