package item

import (
	"net/http"
	"time"

	"github.com/Raf4ok0/shareit/internal/booking"
	"github.com/Raf4ok0/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "item not found")
	ErrOwnerNotFound   = apperror.New(http.StatusNotFound, "user not found")
	ErrNotOwnersItem   = apperror.New(http.StatusNotFound, "item not found among this user's items")
	ErrCommentDenied   = apperror.New(http.StatusBadRequest, "only a user whose approved booking of the item has ended can comment on it")
	ErrCommentExists   = apperror.New(http.StatusConflict, "item can be commented only once per user")
	ErrCommentRequired = apperror.New(http.StatusBadRequest, "comment text must not be empty")
)

// Item is a thing an owner offers for booking. RequestID links the item to
// the item request it was created in answer to, if any.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is feedback left on an item by a user who has finished an approved
// booking of it.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// WithBookings is the owner-facing view of an item: the item itself, its
// last and next approved bookings relative to now, and all comments.
// Non-owners get nil bookings.
type WithBookings struct {
	Item        *Item
	LastBooking *booking.Booking
	NextBooking *booking.Booking
	Comments    []*Comment
}
