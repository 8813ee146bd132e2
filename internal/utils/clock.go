package utils

import "time"

// Clock supplies the createdAt/updatedAt timestamps of stored records.
type Clock interface {
	Now() time.Time
}

// SystemClock returns UTC time truncated to milliseconds, the precision both storage
// backends keep.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type FixedClock struct {
	FixedNow time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.FixedNow
}

func (c *FixedClock) Set(now time.Time) {
	c.FixedNow = now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.FixedNow = c.FixedNow.Add(d)
}
