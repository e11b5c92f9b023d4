package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot holds everything one refresh cycle derived.
// It is never mutated after it is published to the scheduler.
type Snapshot struct {
	CycleID   uuid.UUID                   `json:"cycleId"`
	Ticker    string                      `json:"ticker"`
	Native    *Quote                      `json:"native,omitempty"`
	Quotes    map[string]Quote            `json:"quotes"`
	Cross     map[Denomination]CrossQuote `json:"cross,omitempty"`
	FetchedAt time.Time                   `json:"fetchedAt"`
}

// Empty reports whether the cycle found no quote for the primary ticker.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Native == nil
}
