package model

import (
	"math/rand"
	"time"
)

// Rand is the randomness consumed by generation and placement.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. Seed 0 seeds from the wall clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Clock reports monotonic time elapsed since a session started.
type Clock interface {
	Elapsed() time.Duration
}

type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Used by headless drivers and tests.
type ManualClock struct {
	Now time.Duration
}

func (c *ManualClock) Elapsed() time.Duration {
	return c.Now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.Now += d
}
