package item

import (
	"context"
	"strings"
	"time"

	"github.com/Raf4ok0/shareit/internal/booking"
	"github.com/Raf4ok0/shareit/internal/pkg/clock"
)

// UserDirectory is the slice of the user module the item module needs.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	GetName(ctx context.Context, userID int64) (string, error)
}

// BookingLookup is the slice of the booking repository the item module
// needs: approved bookings for the last/next summary and the finished
// booking check gating comments.
type BookingLookup interface {
	ListApprovedForItem(ctx context.Context, itemID int64) ([]*booking.Booking, error)
	ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*booking.Booking, error)
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)
}

type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error)
	Get(ctx context.Context, actorID, itemID int64) (*WithBookings, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]*WithBookings, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)

	// Collaborator contract consumed by the booking module.
	Exists(ctx context.Context, itemID int64) (bool, error)
	GetOwner(ctx context.Context, itemID int64) (int64, error)
	IsAvailable(ctx context.Context, itemID int64) (bool, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserDirectory
	bookings BookingLookup
	clock    clock.Clock
}

func NewService(
	repo Repository,
	comments CommentRepository,
	users UserDirectory,
	bookings BookingLookup,
	clk clock.Clock,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	ownerExists, err := s.users.Exists(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !ownerExists {
		return nil, ErrOwnerNotFound
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     req.OwnerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update applies a partial update. Only the item's owner may change it.
func (s *service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotOwnersItem
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Get returns the item with its comments. The owner additionally sees the
// last and next approved bookings; other viewers never do.
func (s *service) Get(ctx context.Context, actorID, itemID int64) (*WithBookings, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &WithBookings{Item: it}

	if it.OwnerID == actorID {
		sorted, err := s.bookings.ListApprovedForItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		view.LastBooking, view.NextBooking = booking.FindLastAndNext(sorted, s.clock.Now())
	}

	view.Comments, err = s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64) ([]*WithBookings, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	bookings, err := s.bookings.ListApprovedForItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[int64][]*booking.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]*Comment)
	for _, cm := range comments {
		commentsByItem[cm.ItemID] = append(commentsByItem[cm.ItemID], cm)
	}

	now := s.clock.Now()
	views := make([]*WithBookings, len(items))
	for i, it := range items {
		last, next := booking.FindLastAndNext(bookingsByItem[it.ID], now)
		views[i] = &WithBookings{
			Item:        it,
			LastBooking: last,
			NextBooking: next,
			Comments:    commentsByItem[it.ID],
		}
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}

	exists, err := s.repo.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	now := s.clock.Now()

	// Commenting is earned by an approved booking that has already ended.
	allowed, err := s.bookings.HasFinishedApproved(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrCommentDenied
	}

	commented, err := s.comments.ExistsByItemAndAuthor(ctx, itemID, authorID)
	if err != nil {
		return nil, err
	}
	if commented {
		return nil, ErrCommentExists
	}

	authorName, err := s.users.GetName(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Created:    now,
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) Exists(ctx context.Context, itemID int64) (bool, error) {
	return s.repo.Exists(ctx, itemID)
}

func (s *service) GetOwner(ctx context.Context, itemID int64) (int64, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return it.OwnerID, nil
}

func (s *service) IsAvailable(ctx context.Context, itemID int64) (bool, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	return it.Available, nil
}
