package rules

import "sync"

// UsageCounter tracks how many times each seat has used each card name during
// the current turn. The turn engine resets it at the start of every turn.
type UsageCounter struct {
	mu     sync.Mutex
	counts map[int]map[string]int
}

// NewUsageCounter creates an empty usage counter.
func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[int]map[string]int)}
}

// Record notes one use of the named card by the seat.
func (uc *UsageCounter) Record(seat int, cardName string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.counts[seat] == nil {
		uc.counts[seat] = make(map[string]int)
	}
	uc.counts[seat][cardName]++
}

// Count returns how many times the seat has used the named card this turn.
func (uc *UsageCounter) Count(seat int, cardName string) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.counts[seat][cardName]
}

// ResetTurn clears all usage counts.
func (uc *UsageCounter) ResetTurn() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.counts = make(map[int]map[string]int)
}
