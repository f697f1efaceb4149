package clock

import "time"

// ISO8601Millis is the timestamp layout stored in createdAt. It matches
// what a browser's Date.toISOString produces.
const ISO8601Millis = "2006-01-02T15:04:05.000Z"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant until moved.
type FixedClock struct {
	time time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{time: t}
}

func (c *FixedClock) Now() time.Time {
	return c.time
}

func (c *FixedClock) SetTime(t time.Time) {
	c.time = t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.time = c.time.Add(d)
}

// Timestamp formats t in UTC as ISO8601Millis.
func Timestamp(t time.Time) string {
	return t.UTC().Format(ISO8601Millis)
}
