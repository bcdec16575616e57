package models

import "time"

// Request/response models for the HTTP edge. The acting user id arrives
// in the X-Sharer-User-Id header, not in the body.

// CreateUserRequest - payload for POST /users
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest - payload for PATCH /users/:id; absent fields keep
// their current value, a blank name is ignored
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse - user representation returned by the API
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateItemRequest - payload for POST /items
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest - payload for PATCH /items/:id; partial update
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

// ShortBookingResponse - booking reference embedded in item views
type ShortBookingResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentResponse - comment representation embedded in item views
type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemResponse - item representation; lastBooking/nextBooking are only
// present on owner-scoped views with qualifying bookings
type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	RequestID   *int64                `json:"requestId,omitempty"`
	LastBooking *ShortBookingResponse `json:"lastBooking,omitempty"`
	NextBooking *ShortBookingResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse     `json:"comments"`
}

// CreateCommentRequest - payload for POST /items/:id/comment
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateBookingRequest - payload for POST /bookings
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ShortUserResponse - user reference embedded in booking views
type ShortUserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShortItemResponse - item reference embedded in booking views
type ShortItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResponse - booking representation with booker and item resolved
type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Status BookingStatus     `json:"status"`
	Booker ShortUserResponse `json:"booker"`
	Item   ShortItemResponse `json:"item"`
}

// CreateItemRequestRequest - payload for POST /requests (wish-list entry)
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// ItemRequestResponse - wish-list entry with the items listed against it
type ItemRequestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []ItemResponse `json:"items"`
}

// BookingToResponse builds the API representation of a booking with its
// joined booker and item fields.
func BookingToResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: ShortUserResponse{ID: b.BookerID, Name: b.BookerName},
		Item:   ShortItemResponse{ID: b.ItemID, Name: b.ItemName},
	}
}

// BookingToShortResponse builds the compact booking reference used in
// item views. Nil in, nil out.
func BookingToShortResponse(b *Booking) *ShortBookingResponse {
	if b == nil {
		return nil
	}
	return &ShortBookingResponse{ID: b.ID, BookerID: b.BookerID}
}

// CommentToResponse builds the API representation of a comment.
func CommentToResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

// UserToResponse builds the API representation of a user.
func UserToResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
