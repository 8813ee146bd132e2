package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_IsUTCMillisecondPrecision(t *testing.T) {
	now := SystemClock{}.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, 0, now.Nanosecond()%int(time.Millisecond))
}

func TestFixedClock_Advance(t *testing.T) {
	start := time.Date(2021, 5, 31, 12, 0, 0, 0, time.UTC)
	clock := &FixedClock{FixedNow: start}

	clock.Advance(90 * time.Second)

	assert.Equal(t, start.Add(90*time.Second), clock.Now())
}
