package http

import (
	"time"

	"github.com/Raf4ok0/shareit/internal/booking"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,min=1"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ListBookingsRequest defines query parameters for both listing endpoints.
type ListBookingsRequest struct {
	State string `form:"state,default=ALL"`
	From  int    `form:"from,default=0" binding:"min=0"`
	Size  int    `form:"size,default=20" binding:"min=1"`
}

type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserTag   `json:"booker"`
	Item   ItemTag   `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}
