package itemrequest

import (
	"net/http"
	"time"

	"github.com/Raf4ok0/shareit/internal/item"
	"github.com/Raf4ok0/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrUserNotFound        = apperror.New(http.StatusNotFound, "user not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "request description must not be empty")
)

// ItemRequest is a user's ask for an item nobody has listed yet. Items
// created with a matching requestId become its answers.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// WithAnswers pairs a request with the items offered in response to it.
type WithAnswers struct {
	Request *ItemRequest
	Items   []*item.Item
}
