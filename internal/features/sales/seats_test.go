package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
)

func TestFreeSeats(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, FreeSeats(4, nil))
	assert.Equal(t, []int{1, 3}, FreeSeats(4, []int{4, 2}))
	assert.Empty(t, FreeSeats(2, []int{1, 2}))
	assert.Empty(t, FreeSeats(0, nil))
}

// Free and occupied partition 1..capacity.
func TestFreeSeats_Partition(t *testing.T) {
	occupied := []int{5, 1, 24, 13}
	free := FreeSeats(24, occupied)
	require.Len(t, free, 20)

	all := map[int]bool{}
	for _, s := range append(free, occupied...) {
		assert.False(t, all[s], "seat %d listed twice", s)
		all[s] = true
	}
	assert.Len(t, all, 24)
}

func TestCheckRequest(t *testing.T) {
	assert.NoError(t, CheckRequest(24, []int{1, 24, 12}))
	assert.ErrorIs(t, CheckRequest(24, nil), common.ErrNoSeats)
	assert.ErrorIs(t, CheckRequest(24, []int{0}), common.ErrSeatOutOfRange)
	assert.ErrorIs(t, CheckRequest(24, []int{25}), common.ErrSeatOutOfRange)
	assert.ErrorIs(t, CheckRequest(24, []int{3, 7, 3}), common.ErrDuplicateSeat)
}

func TestParseSeats(t *testing.T) {
	seats, err := parseSeats([]string{"3,4", "7", " 9 ,"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 7, 9}, seats)

	_, err = parseSeats([]string{"3a"})
	assert.Error(t, err)
}
