package booking

import "time"

// FindLastAndNext derives the "last" and "next" bookings from an item's
// approved bookings sorted by start ascending: next is the first booking
// starting after now, last is the one right before it. With no future
// bookings, last is the final element; with only future bookings, last is
// nil. An empty input yields (nil, nil).
func FindLastAndNext(sorted []*Booking, now time.Time) (last, next *Booking) {
	if len(sorted) == 0 {
		return nil, nil
	}

	k := -1
	for i, b := range sorted {
		if b.Start.After(now) {
			k = i
			break
		}
	}

	switch {
	case k == -1:
		last = sorted[len(sorted)-1]
	case k == 0:
		next = sorted[0]
	default:
		last = sorted[k-1]
		next = sorted[k]
	}
	return last, next
}
