// SPDX-License-Identifier: MIT

// Package idx generates palette identifiers. IDs are ULIDs: a millisecond
// timestamp followed by monotonic randomness, so two IDs minted in the same
// millisecond still differ and sort in creation order.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID stamped with the current time
func New() string {
	return NewAt(time.Now())
}

// NewAt returns an ID stamped with t
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String()
}

// Valid reports whether s is a well-formed ID
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Time extracts the embedded timestamp, or the zero time for IDs this
// package did not mint (imported catalogs may carry other ID schemes).
func Time(id string) time.Time {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
