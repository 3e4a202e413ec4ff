package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFindLastAndNext(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	past1 := &Booking{ID: 1, Start: now.Add(-48 * time.Hour), End: now.Add(-47 * time.Hour)}
	past2 := &Booking{ID: 2, Start: now.Add(-24 * time.Hour), End: now.Add(-23 * time.Hour)}
	future1 := &Booking{ID: 3, Start: now.Add(24 * time.Hour), End: now.Add(25 * time.Hour)}
	future2 := &Booking{ID: 4, Start: now.Add(48 * time.Hour), End: now.Add(49 * time.Hour)}

	tests := []struct {
		name   string
		sorted []*Booking
		last   *Booking
		next   *Booking
	}{
		{"empty", nil, nil, nil},
		{"all past", []*Booking{past1, past2}, past2, nil},
		{"all future", []*Booking{future1, future2}, nil, future1},
		{"straddling now", []*Booking{past1, past2, future1, future2}, past2, future1},
		{"single past", []*Booking{past1}, past1, nil},
		{"single future", []*Booking{future1}, nil, future1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, next := FindLastAndNext(tt.sorted, now)
			assert.Equal(t, tt.last, last)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestFindLastAndNextOngoingBookingIsLast(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Started before now, ends after now: its start is not after now, so it
	// counts as "last" rather than "next".
	ongoing := &Booking{ID: 1, Start: now.Add(-time.Hour), End: now.Add(time.Hour)}
	future := &Booking{ID: 2, Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)}

	last, next := FindLastAndNext([]*Booking{ongoing, future}, now)
	assert.Equal(t, ongoing, last)
	assert.Equal(t, future, next)
}
