package booking

import (
	"context"
	"time"

	"github.com/Raf4ok0/shareit/internal/pkg/clock"
)

// ItemDirectory is the item-catalog collaborator. The booking core only
// needs existence, ownership and the availability flag.
type ItemDirectory interface {
	Exists(ctx context.Context, itemID int64) (bool, error)
	GetOwner(ctx context.Context, itemID int64) (int64, error)
	IsAvailable(ctx context.Context, itemID int64) (bool, error)
}

// UserDirectory is the user-directory collaborator.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

type CreateRequest struct {
	BookerID int64
	ItemID   int64
	Start    time.Time
	End      time.Time
}

type Service interface {
	// Create registers a WAITING booking after the interval, the item, the
	// booker and the conflict detector all check out.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	// Decide moves a WAITING booking to APPROVED or REJECTED. Only the item
	// owner may decide, and only once.
	Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error)
	// Get returns a booking to its booker or the item owner.
	Get(ctx context.Context, actorID, bookingID int64) (*Booking, error)
	// ListForBooker returns the booker's bookings matching the state token,
	// ordered by start descending.
	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error)
	// ListForOwner is ListForBooker for the owning side of the bookings.
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemDirectory
	users UserDirectory
	clock clock.Clock
}

func NewService(repo Repository, items ItemDirectory, users UserDirectory, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// Precondition order is part of the contract: interval, item, booker,
	// availability, self-booking, conflicts. First failure wins.
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidInterval
	}

	itemExists, err := s.items.Exists(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !itemExists {
		return nil, ErrItemNotFound
	}

	bookerExists, err := s.users.Exists(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	if !bookerExists {
		return nil, ErrUserNotFound
	}

	available, err := s.items.IsAvailable(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrItemUnavailable
	}

	ownerID, err := s.items.GetOwner(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if ownerID == req.BookerID {
		return nil, ErrOwnItem
	}

	now := s.clock.Now()

	var created *Booking
	err = s.repo.InTx(ctx, func(r Repository) error {
		// Serialize writers on this item so the conflict check and the
		// insert observe a stable set of approved bookings.
		if err := r.LockItem(ctx, req.ItemID); err != nil {
			return err
		}

		// Approved bookings already over cannot conflict with a candidate
		// that starts now or later.
		existing, err := r.ListApprovedEndingAfter(ctx, req.ItemID, now)
		if err != nil {
			return err
		}
		if c := findConflict(req.Start, req.End, existing); c != nil {
			return conflictError(c)
		}

		b := &Booking{
			ItemID:   req.ItemID,
			BookerID: req.BookerID,
			Start:    req.Start,
			End:      req.End,
			Status:   StatusWaiting,
		}
		if err := r.Create(ctx, b); err != nil {
			return err
		}

		created, err = r.GetByID(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error) {
	var decided *Booking
	err := s.repo.InTx(ctx, func(r Repository) error {
		// Row lock so a concurrent decision on the same booking observes the
		// committed status and fails the WAITING check.
		b, err := r.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if b.OwnerID != actorID {
			return ErrNotOwner
		}
		if b.Status != StatusWaiting {
			return ErrAlreadyDecided
		}

		status := StatusRejected
		if approved {
			status = StatusApproved
		}
		if err := r.UpdateStatus(ctx, bookingID, status); err != nil {
			return err
		}

		b.Status = status
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func (s *service) Get(ctx context.Context, actorID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actorID && b.OwnerID != actorID {
		return nil, ErrNotParty
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error) {
	f, err := s.listFilter(ctx, bookerID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.BookerID = bookerID
	return s.repo.List(ctx, f)
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error) {
	f, err := s.listFilter(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.OwnerID = ownerID
	return s.repo.List(ctx, f)
}

// listFilter validates the state token, verifies the party exists, and
// builds the temporal filter against a single snapshot of "now".
func (s *service) listFilter(ctx context.Context, partyID int64, state string, from, size int) (Filter, error) {
	st, err := ParseSearchingState(state)
	if err != nil {
		return Filter{}, err
	}

	exists, err := s.users.Exists(ctx, partyID)
	if err != nil {
		return Filter{}, err
	}
	if !exists {
		return Filter{}, ErrUserNotFound
	}

	f := stateFilter(st, s.clock.Now())
	f.Offset = from
	f.Limit = size
	return f, nil
}
