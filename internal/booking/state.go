package booking

import "time"

// SearchingState names the slice of a party's bookings a listing returns.
// It is a query-time parameter only and is never persisted.
type SearchingState string

const (
	StateAll      SearchingState = "ALL"
	StateCurrent  SearchingState = "CURRENT"
	StatePast     SearchingState = "PAST"
	StateFuture   SearchingState = "FUTURE"
	StateWaiting  SearchingState = "WAITING"
	StateRejected SearchingState = "REJECTED"
)

// ParseSearchingState validates a state token. An unknown token fails before
// any repository query runs.
func ParseSearchingState(token string) (SearchingState, error) {
	switch s := SearchingState(token); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", unknownStateError(token)
	}
}

// stateFilter translates a searching state into query bounds, evaluated
// against a single "now" so one call sees one consistent snapshot.
func stateFilter(state SearchingState, now time.Time) Filter {
	switch state {
	case StateCurrent:
		return Filter{StartBefore: &now, EndAfter: &now}
	case StatePast:
		return Filter{EndBefore: &now}
	case StateFuture:
		return Filter{StartAfter: &now}
	case StateWaiting:
		return Filter{Status: StatusWaiting}
	case StateRejected:
		return Filter{Status: StatusRejected}
	default: // StateAll
		return Filter{}
	}
}
