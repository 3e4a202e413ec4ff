package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Raf4ok0/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidInterval = apperror.New(http.StatusBadRequest, "booking start must be before booking end")
	ErrItemNotFound    = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound    = apperror.New(http.StatusNotFound, "user not found")
	ErrItemUnavailable = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrOwnItem         = apperror.New(http.StatusForbidden, "owner cannot book their own item")
	ErrNotOwner        = apperror.New(http.StatusForbidden, "only the item owner can change booking status")
	ErrNotParty        = apperror.New(http.StatusForbidden, "only the booker or the item owner can view this booking")
	ErrAlreadyDecided  = apperror.New(http.StatusBadRequest, "booking status cannot be changed twice")
	ErrTimeConflict    = apperror.New(http.StatusConflict, "time slot already booked")
)

// Status is the lifecycle state of a booking. A booking starts WAITING and
// moves exactly once to APPROVED or REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a request by one user (the booker) to reserve another user's
// item for a time interval. OwnerID, ItemName and BookerName are denormalized
// from the item and user rows at read time.
type Booking struct {
	ID         int64
	ItemID     int64
	ItemName   string
	BookerID   int64
	BookerName string
	OwnerID    int64
	Start      time.Time
	End        time.Time
	Status     Status
}

// Filter selects a subset of bookings for listing queries. Exactly one of
// BookerID/OwnerID is set by the service; time bounds and status come from
// the searching state. Results are always ordered by start descending.
type Filter struct {
	BookerID    int64
	OwnerID     int64
	Status      Status
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Offset      int
	Limit       int
}

func conflictError(b *Booking) error {
	return apperror.Wrap(ErrTimeConflict,
		http.StatusConflict,
		fmt.Sprintf("interval overlaps approved booking %d (%s - %s)",
			b.ID, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339)))
}

func unknownStateError(token string) error {
	return apperror.New(http.StatusBadRequest, fmt.Sprintf("Unknown state: %s", token))
}
