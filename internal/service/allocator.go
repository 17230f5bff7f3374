package service

import "github.com/google/uuid"

// lotView is the allocator's in-memory picture of a stock lot. Views are
// shared across the lines of one sale so a later line of the same product
// sees what earlier lines already claimed.
type lotView struct {
	ID        uuid.UUID
	Available int64
}

// lotTake is one planned draw from a lot, in base units.
type lotTake struct {
	LotID  uuid.UUID
	Amount int64
}

// allocateFEFO plans draws against lots in the order given (oldest received
// first), decrementing each view as it goes. It returns the planned takes and
// the unmet remainder; a remainder above zero means insufficient stock and the
// caller must abort before applying any take.
func allocateFEFO(lots []*lotView, demand int64) ([]lotTake, int64) {
	var takes []lotTake
	remaining := demand
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		if lot.Available <= 0 {
			continue
		}
		take := lot.Available
		if take > remaining {
			take = remaining
		}
		lot.Available -= take
		remaining -= take
		takes = append(takes, lotTake{LotID: lot.ID, Amount: take})
	}
	return takes, remaining
}
