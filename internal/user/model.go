package user

import (
	"net/http"

	"github.com/Raf4ok0/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailTaken    = apperror.New(http.StatusConflict, "email is already used by another user")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email must not be empty")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name must not be empty")
)

// User is a participant of the system: an owner of items, a booker, or both.
type User struct {
	ID    int64
	Name  string
	Email string
}
