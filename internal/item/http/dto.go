package http

import (
	"time"

	"github.com/Raf4ok0/shareit/internal/booking"
	"github.com/Raf4ok0/shareit/internal/item"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

// SimpleBookingTag is the condensed booking view embedded in item responses.
type SimpleBookingTag struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	BookerID int64     `json:"bookerId"`
}

func newSimpleBookingTag(b *booking.Booking) *SimpleBookingTag {
	if b == nil {
		return nil
	}
	return &SimpleBookingTag{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
		BookerID: b.BookerID,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.Created,
	}
}

type ItemWithBookingsResponse struct {
	ItemResponse
	LastBooking *SimpleBookingTag `json:"lastBooking"`
	NextBooking *SimpleBookingTag `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemWithBookingsResponse(view *item.WithBookings) ItemWithBookingsResponse {
	comments := make([]CommentResponse, len(view.Comments))
	for i, cm := range view.Comments {
		comments[i] = NewCommentResponse(cm)
	}
	return ItemWithBookingsResponse{
		ItemResponse: NewItemResponse(view.Item),
		LastBooking:  newSimpleBookingTag(view.LastBooking),
		NextBooking:  newSimpleBookingTag(view.NextBooking),
		Comments:     comments,
	}
}
