package repository

import (
	"shareit/internal/cache"
	"shareit/internal/database"
)

type Repositories struct {
	Users    *UserRepository
	Items    *ItemRepository
	Requests *RequestRepository
	Bookings *BookingRepository
	Comments *CommentRepository
}

// NewRepositories wires the SQL repositories. The Valkey client is
// optional; a nil client means user lookups always hit the database.
func NewRepositories(db *database.DB, valkey *cache.ValkeyClient) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db, valkey),
		Items:    NewItemRepository(db),
		Requests: NewRequestRepository(db),
		Bookings: NewBookingRepository(db),
		Comments: NewCommentRepository(db),
	}
}
