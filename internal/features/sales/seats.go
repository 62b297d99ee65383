package sales

import (
	"fmt"

	"busline.mx/erp/internal/common"
)

// FreeSeats returns 1..capacity minus occupied, ascending.
func FreeSeats(capacity int, occupied []int) []int {
	taken := make(map[int]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}
	free := make([]int, 0, capacity)
	for s := 1; s <= capacity; s++ {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}

// CheckRequest validates seat numbers against the bus capacity: at least
// one seat, each in 1..capacity, none repeated.
func CheckRequest(capacity int, seats []int) error {
	if len(seats) == 0 {
		return common.ErrNoSeats
	}
	seen := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		if s < 1 || s > capacity {
			return fmt.Errorf("%w: seat %d, bus has %d", common.ErrSeatOutOfRange, s, capacity)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: seat %d", common.ErrDuplicateSeat, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
