// SPDX-License-Identifier: MIT
package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueWithinOneMillisecond(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewAt(at)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewSortsByTime(t *testing.T) {
	a := NewAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewAt(time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC))
	require.Less(t, a, b)
}

func TestTime(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 30, 0, 0, time.UTC)
	id := NewAt(at)

	require.True(t, Valid(id))
	require.True(t, Time(id).Equal(at))
	require.True(t, Time("not-an-id").IsZero())
	require.False(t, Valid("not-an-id"))
}
