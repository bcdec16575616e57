package models

import (
	"time"
)

// User represents a registered user of the sharing service
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// Item represents a thing offered for sharing by its owner
type Item struct {
	ID          int64  `json:"id" db:"id"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	RequestID   *int64 `json:"request_id" db:"request_id"`
}

// ItemRequest represents a wish-list entry that other users can fulfill
// by listing a matching item
type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	RequesterID int64     `json:"requester_id" db:"requester_id"`
	Description string    `json:"description" db:"description"`
	Created     time.Time `json:"created" db:"created"`
}

// BookingStatus is the approval state of a booking.
// Lifecycle: WAITING -> APPROVED | REJECTED.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Booking represents a time-bounded reservation of an item
type Booking struct {
	ID        int64         `json:"id" db:"id"`
	ItemID    int64         `json:"item_id" db:"item_id"`
	BookerID  int64         `json:"booker_id" db:"booker_id"`
	Start     time.Time     `json:"start" db:"start_date"`
	End       time.Time     `json:"end" db:"end_date"`
	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`

	// Resolved from joins, not columns of the bookings table
	BookerName  string `json:"-"`
	ItemName    string `json:"-"`
	ItemOwnerID int64  `json:"-"`
}

// Comment represents feedback left on an item by a past booker
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ItemID     int64     `json:"item_id" db:"item_id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	Text       string    `json:"text" db:"text"`
	Created    time.Time `json:"created" db:"created"`
	AuthorName string    `json:"-"` // joined from users
}
