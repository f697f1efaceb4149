package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc with millis", time.Date(2024, 3, 9, 7, 5, 3, 120_000_000, time.UTC), "2024-03-09T07:05:03.120Z"},
		{"zero millis kept", time.Date(2024, 3, 9, 7, 5, 3, 0, time.UTC), "2024-03-09T07:05:03.000Z"},
		{"converted to utc", time.Date(2024, 1, 1, 2, 0, 0, 0, loc), "2023-12-31T18:00:00.000Z"},
		{"sub-millisecond truncated", time.Date(2024, 1, 1, 0, 0, 0, 999_999, time.UTC), "2024-01-01T00:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Timestamp(tt.in))
		})
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), c.Now())

	c.SetTime(start)
	assert.Equal(t, start, c.Now())
}
