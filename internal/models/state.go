package models

// BookingState is a listing filter: either the literal ALL, a temporal
// category relative to "now", or an approval status. Temporal categories
// are query-time views and are never stored.
type BookingState string

const (
	StateAll     BookingState = "ALL"
	StatePast    BookingState = "PAST"
	StateCurrent BookingState = "CURRENT"
	StateFuture  BookingState = "FUTURE"

	StateWaiting  BookingState = BookingState(StatusWaiting)
	StateApproved BookingState = BookingState(StatusApproved)
	StateRejected BookingState = BookingState(StatusRejected)
)

// ParseBookingState resolves a raw state token. Resolution order: the
// literal ALL first, then temporal categories, then approval statuses.
// The boolean reports whether the token matched.
func ParseBookingState(raw string) (BookingState, bool) {
	switch BookingState(raw) {
	case StateAll:
		return StateAll, true
	case StatePast, StateCurrent, StateFuture:
		return BookingState(raw), true
	case StateWaiting, StateApproved, StateRejected:
		return BookingState(raw), true
	default:
		return "", false
	}
}

// IsStatus reports whether the state filters on an approval status
// rather than a temporal category.
func (s BookingState) IsStatus() bool {
	switch s {
	case StateWaiting, StateApproved, StateRejected:
		return true
	}
	return false
}

// Status returns the approval status the state filters on. Only valid
// when IsStatus is true.
func (s BookingState) Status() BookingStatus {
	return BookingStatus(s)
}
