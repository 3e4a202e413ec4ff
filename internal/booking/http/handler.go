package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Raf4ok0/shareit/internal/booking"
	"github.com/Raf4ok0/shareit/internal/identity"
	"github.com/Raf4ok0/shareit/internal/metrics"
	"github.com/Raf4ok0/shareit/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.CreateRequest{
		BookerID: identity.CurrentUserID(c),
		ItemID:   body.ItemID,
		Start:    body.Start,
		End:      body.End,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, booking.ErrTimeConflict) {
			metrics.BookingConflictsTotal.Inc()
		}
		response.Error(c, err)
		return
	}

	metrics.BookingsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Decide(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter must be true or false"})
		return
	}

	b, err := h.service.Decide(c.Request.Context(), identity.CurrentUserID(c), id, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.BookingDecisionsTotal.WithLabelValues(string(b.Status)).Inc()
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), identity.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListForBooker(c *gin.Context) {
	h.list(c, h.service.ListForBooker)
}

func (h *Handler) ListForOwner(c *gin.Context) {
	h.list(c, h.service.ListForOwner)
}

type listFunc func(ctx context.Context, partyID int64, state string, from, size int) ([]*booking.Booking, error)

func (h *Handler) list(c *gin.Context, fn listFunc) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	bookings, err := fn(c.Request.Context(), identity.CurrentUserID(c), query.State, query.From, query.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}
