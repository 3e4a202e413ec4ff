package itemrequest

import (
	"context"
	"strings"

	"github.com/Raf4ok0/shareit/internal/item"
	"github.com/Raf4ok0/shareit/internal/pkg/clock"
)

// UserDirectory is the slice of the user module this package needs.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// ItemLookup resolves the items offered in answer to requests.
type ItemLookup interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*WithAnswers, error)
	ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*ItemRequest, error)
	Get(ctx context.Context, actorID, requestID int64) (*WithAnswers, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemLookup
	clock clock.Clock
}

func NewService(repo Repository, users UserDirectory, items ItemLookup, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*WithAnswers, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requesterID int64, from, size int) ([]*ItemRequest, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListOthers(ctx, requesterID, from, size)
}

func (s *service) Get(ctx context.Context, actorID, requestID int64) (*WithAnswers, error) {
	if err := s.checkUser(ctx, actorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.withAnswers(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *service) checkUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (s *service) withAnswers(ctx context.Context, requests []*ItemRequest) ([]*WithAnswers, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	answers, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]*item.Item)
	for _, it := range answers {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	views := make([]*WithAnswers, len(requests))
	for i, req := range requests {
		views[i] = &WithAnswers{Request: req, Items: byRequest[req.ID]}
	}
	return views, nil
}
