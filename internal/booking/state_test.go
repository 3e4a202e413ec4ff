package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raf4ok0/shareit/internal/pkg/apperror"
)

func TestParseSearchingState(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		st, err := ParseSearchingState(token)
		require.NoError(t, err)
		assert.Equal(t, SearchingState(token), st)
	}
}

func TestParseSearchingStateUnknownToken(t *testing.T) {
	for _, token := range []string{"", "all", "APPROVED", "SOMETHING"} {
		_, err := ParseSearchingState(token)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Equal(t, "Unknown state: "+token, appErr.Message)
	}
}

func TestStateFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ALL has no bounds", func(t *testing.T) {
		assert.Equal(t, Filter{}, stateFilter(StateAll, now))
	})

	t.Run("CURRENT brackets now", func(t *testing.T) {
		f := stateFilter(StateCurrent, now)
		require.NotNil(t, f.StartBefore)
		require.NotNil(t, f.EndAfter)
		assert.Equal(t, now, *f.StartBefore)
		assert.Equal(t, now, *f.EndAfter)
		assert.Nil(t, f.StartAfter)
		assert.Nil(t, f.EndBefore)
	})

	t.Run("PAST ends before now", func(t *testing.T) {
		f := stateFilter(StatePast, now)
		require.NotNil(t, f.EndBefore)
		assert.Equal(t, now, *f.EndBefore)
		assert.Nil(t, f.StartBefore)
	})

	t.Run("FUTURE starts after now", func(t *testing.T) {
		f := stateFilter(StateFuture, now)
		require.NotNil(t, f.StartAfter)
		assert.Equal(t, now, *f.StartAfter)
		assert.Nil(t, f.EndAfter)
	})

	t.Run("WAITING and REJECTED filter on status", func(t *testing.T) {
		assert.Equal(t, Filter{Status: StatusWaiting}, stateFilter(StateWaiting, now))
		assert.Equal(t, Filter{Status: StatusRejected}, stateFilter(StateRejected, now))
	})
}
