package booking

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raf4ok0/shareit/internal/pkg/clock"
)

// fakeRepo is an in-memory Repository. InTx just runs fn against the fake
// itself; the transactional guarantees belong to the pgx implementation.
type fakeRepo struct {
	nextID      int64
	bookings    map[int64]*Booking
	itemOwners  map[int64]int64
	lockedItems []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:     1,
		bookings:   make(map[int64]*Booking),
		itemOwners: map[int64]int64{itemID: ownerID},
	}
}

func (f *fakeRepo) InTx(_ context.Context, fn func(Repository) error) error { return fn(f) }

func (f *fakeRepo) LockItem(_ context.Context, itemID int64) error {
	f.lockedItems = append(f.lockedItems, itemID)
	return nil
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	stored := *b
	// The pgx repository reads the owner through a join; mimic that here.
	if stored.OwnerID == 0 {
		stored.OwnerID = f.itemOwners[stored.ItemID]
	}
	stored.ID = f.nextID
	f.nextID++
	f.bookings[stored.ID] = &stored
	b.ID = stored.ID
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*Booking, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status Status) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, error) {
	var out []*Booking
	for _, b := range f.bookings {
		if filter.BookerID != 0 && b.BookerID != filter.BookerID {
			continue
		}
		if filter.OwnerID != 0 && b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.StartBefore != nil && !b.Start.Before(*filter.StartBefore) {
			continue
		}
		if filter.StartAfter != nil && !b.Start.After(*filter.StartAfter) {
			continue
		}
		if filter.EndBefore != nil && !b.End.Before(*filter.EndBefore) {
			continue
		}
		if filter.EndAfter != nil && !b.End.After(*filter.EndAfter) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })

	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
		if len(out) > filter.Limit {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

func (f *fakeRepo) ListApprovedEndingAfter(_ context.Context, itemID int64, after time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.Status == StatusApproved && b.End.After(after) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeRepo) ListApprovedForItem(_ context.Context, itemID int64) ([]*Booking, error) {
	return f.ListApprovedEndingAfter(context.Background(), itemID, time.Time{})
}

func (f *fakeRepo) ListApprovedForItems(_ context.Context, itemIDs []int64) ([]*Booking, error) {
	var out []*Booking
	for _, id := range itemIDs {
		bs, _ := f.ListApprovedForItem(context.Background(), id)
		out = append(out, bs...)
	}
	return out, nil
}

func (f *fakeRepo) HasFinishedApproved(_ context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.Status == StatusApproved && b.End.Before(before) {
			return true, nil
		}
	}
	return false, nil
}

// fakeItems maps item id to owner and availability.
type fakeItems struct {
	owners    map[int64]int64
	available map[int64]bool
}

func (f *fakeItems) Exists(_ context.Context, itemID int64) (bool, error) {
	_, ok := f.owners[itemID]
	return ok, nil
}

func (f *fakeItems) GetOwner(_ context.Context, itemID int64) (int64, error) {
	return f.owners[itemID], nil
}

func (f *fakeItems) IsAvailable(_ context.Context, itemID int64) (bool, error) {
	return f.available[itemID], nil
}

type fakeUsers struct{ ids map[int64]bool }

func (f *fakeUsers) Exists(_ context.Context, userID int64) (bool, error) {
	return f.ids[userID], nil
}

const (
	ownerID  int64 = 1
	bookerID int64 = 2
	otherID  int64 = 3
	itemID   int64 = 10
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) Service {
	items := &fakeItems{
		owners:    map[int64]int64{itemID: ownerID},
		available: map[int64]bool{itemID: true},
	}
	users := &fakeUsers{ids: map[int64]bool{ownerID: true, bookerID: true, otherID: true}}
	return NewService(repo, items, users, clock.Fixed(testNow))
}

func futureRequest(startHours, endHours int) CreateRequest {
	return CreateRequest{
		BookerID: bookerID,
		ItemID:   itemID,
		Start:    testNow.Add(time.Duration(startHours) * time.Hour),
		End:      testNow.Add(time.Duration(endHours) * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	b, err := svc.Create(context.Background(), futureRequest(1, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.NotZero(t, b.ID)
	assert.Equal(t, []int64{itemID}, repo.lockedItems)
}

func TestCreateBookingPreconditions(t *testing.T) {
	t.Run("empty interval", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		req := futureRequest(1, 1)
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("inverted interval", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Create(context.Background(), futureRequest(2, 1))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		req := futureRequest(1, 2)
		req.ItemID = 99
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown booker", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		req := futureRequest(1, 2)
		req.BookerID = 99
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("item unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		items := &fakeItems{
			owners:    map[int64]int64{itemID: ownerID},
			available: map[int64]bool{itemID: false},
		}
		users := &fakeUsers{ids: map[int64]bool{ownerID: true, bookerID: true}}
		svc := NewService(repo, items, users, clock.Fixed(testNow))

		_, err := svc.Create(context.Background(), futureRequest(1, 2))
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("owner booking own item", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		req := futureRequest(1, 2)
		req.BookerID = ownerID
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("unknown item wins over unknown booker", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		req := futureRequest(1, 2)
		req.ItemID = 99
		req.BookerID = 99
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestCreateBookingConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, futureRequest(1, 3))
	require.NoError(t, err)

	// WAITING bookings never block; only approved ones feed the check.
	_, err = svc.Create(ctx, futureRequest(2, 4))
	require.NoError(t, err)

	_, err = svc.Decide(ctx, ownerID, first.ID, true)
	require.NoError(t, err)

	_, err = svc.Create(ctx, futureRequest(2, 4))
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateBookingSharedStartSlipsThrough(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, futureRequest(1, 3))
	require.NoError(t, err)
	_, err = svc.Decide(ctx, ownerID, first.ID, true)
	require.NoError(t, err)

	// Same start instant as the approved booking: the conflict detector lets
	// it through. Documented behavior, not a bug to fix.
	_, err = svc.Create(ctx, futureRequest(1, 5))
	assert.NoError(t, err)
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		b, err := svc.Create(ctx, futureRequest(1, 2))
		require.NoError(t, err)

		decided, err := svc.Decide(ctx, ownerID, b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, decided.Status)
	})

	t.Run("reject", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		b, err := svc.Create(ctx, futureRequest(1, 2))
		require.NoError(t, err)

		decided, err := svc.Decide(ctx, ownerID, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, decided.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		_, err := svc.Decide(ctx, ownerID, 99, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		b, err := svc.Create(ctx, futureRequest(1, 2))
		require.NoError(t, err)

		_, err = svc.Decide(ctx, bookerID, b.ID, true)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("second decision fails", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		b, err := svc.Create(ctx, futureRequest(1, 2))
		require.NoError(t, err)

		_, err = svc.Decide(ctx, ownerID, b.ID, true)
		require.NoError(t, err)

		// Re-approving and flipping to rejected both fail once decided.
		_, err = svc.Decide(ctx, ownerID, b.ID, true)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		_, err = svc.Decide(ctx, ownerID, b.ID, false)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("not-owner wins over already-decided", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		b, err := svc.Create(ctx, futureRequest(1, 2))
		require.NoError(t, err)
		_, err = svc.Decide(ctx, ownerID, b.ID, true)
		require.NoError(t, err)

		_, err = svc.Decide(ctx, otherID, b.ID, false)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	b, err := svc.Create(ctx, futureRequest(1, 2))
	require.NoError(t, err)

	t.Run("booker sees it", func(t *testing.T) {
		got, err := svc.Get(ctx, bookerID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("owner sees it", func(t *testing.T) {
		got, err := svc.Get(ctx, ownerID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("stranger does not", func(t *testing.T) {
		_, err := svc.Get(ctx, otherID, b.ID)
		assert.ErrorIs(t, err, ErrNotParty)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.Get(ctx, bookerID, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListForBooker(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	// Seed directly so past bookings are possible: one past, one current, one
	// future, one rejected future.
	seed := []*Booking{
		{ItemID: itemID, OwnerID: ownerID, BookerID: bookerID, Status: StatusApproved,
			Start: testNow.Add(-4 * time.Hour), End: testNow.Add(-3 * time.Hour)},
		{ItemID: itemID, OwnerID: ownerID, BookerID: bookerID, Status: StatusApproved,
			Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour)},
		{ItemID: itemID, OwnerID: ownerID, BookerID: bookerID, Status: StatusWaiting,
			Start: testNow.Add(2 * time.Hour), End: testNow.Add(3 * time.Hour)},
		{ItemID: itemID, OwnerID: ownerID, BookerID: bookerID, Status: StatusRejected,
			Start: testNow.Add(4 * time.Hour), End: testNow.Add(5 * time.Hour)},
	}
	for _, b := range seed {
		require.NoError(t, repo.Create(ctx, b))
	}

	list := func(state string) []*Booking {
		t.Helper()
		got, err := svc.ListForBooker(ctx, bookerID, state, 0, 20)
		require.NoError(t, err)
		return got
	}

	t.Run("ALL returns everything start-descending", func(t *testing.T) {
		got := list("ALL")
		require.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].Start.Before(got[i-1].Start))
		}
	})

	t.Run("CURRENT", func(t *testing.T) {
		got := list("CURRENT")
		require.Len(t, got, 1)
		assert.Equal(t, seed[1].ID, got[0].ID)
	})

	t.Run("PAST", func(t *testing.T) {
		got := list("PAST")
		require.Len(t, got, 1)
		assert.Equal(t, seed[0].ID, got[0].ID)
	})

	t.Run("FUTURE", func(t *testing.T) {
		got := list("FUTURE")
		require.Len(t, got, 2)
	})

	t.Run("WAITING", func(t *testing.T) {
		got := list("WAITING")
		require.Len(t, got, 1)
		assert.Equal(t, StatusWaiting, got[0].Status)
	})

	t.Run("REJECTED", func(t *testing.T) {
		got := list("REJECTED")
		require.Len(t, got, 1)
		assert.Equal(t, StatusRejected, got[0].Status)
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := svc.ListForBooker(ctx, bookerID, "ALL", 1, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, seed[2].ID, got[0].ID)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := svc.ListForBooker(ctx, bookerID, "SOMETHING", 0, 20)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown state: SOMETHING")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListForBooker(ctx, 99, "ALL", 0, 20)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestListForOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	b, err := svc.Create(ctx, futureRequest(1, 2))
	require.NoError(t, err)

	got, err := svc.ListForOwner(ctx, ownerID, "ALL", 0, 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// The booker owns no items, so the owner-side listing is empty.
	got, err = svc.ListForOwner(ctx, bookerID, "ALL", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}
