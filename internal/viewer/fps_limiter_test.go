package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances by tick on every reading and by d on every sleep
type fakeClock struct {
	t      time.Time
	tick   time.Duration
	sleeps int
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.tick)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps++
	c.t = c.t.Add(d)
}

func newFakeLimiter(fps int) (*FPSLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0), tick: 10 * time.Microsecond}
	l := NewFPSLimiter(func() int { return fps })
	l.now = clock.now
	l.sleep = clock.sleep
	return l, clock
}

func TestFPSLimiterUncappedReturnsImmediately(t *testing.T) {
	l, clock := newFakeLimiter(0)
	start := clock.t
	for i := 0; i < 100; i++ {
		l.Wait()
	}
	assert.Zero(t, clock.sleeps)
	assert.Equal(t, start, clock.t)

	wall := NewFPSLimiter(func() int { return 0 })
	begin := time.Now()
	for i := 0; i < 1000; i++ {
		wall.Wait()
	}
	assert.Less(t, time.Since(begin), 10*time.Millisecond)
}

func TestFPSLimiterNilLimitIsUncapped(t *testing.T) {
	l := NewFPSLimiter(nil)
	begin := time.Now()
	l.Wait()
	assert.Less(t, time.Since(begin), time.Millisecond)
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	l, clock := newFakeLimiter(100)
	start := clock.t
	for i := 0; i < 10; i++ {
		l.Wait()
	}
	elapsed := clock.t.Sub(start)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 101*time.Millisecond)
}

func TestFPSLimiterPacesFramesWallClock(t *testing.T) {
	if testing.Short() {
		t.Skip("wall-clock timing")
	}
	l := NewFPSLimiter(func() int { return 100 })
	begin := time.Now()
	for i := 0; i < 10; i++ {
		l.Wait()
	}
	elapsed := time.Since(begin)
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	assert.Less(t, elapsed, 250*time.Millisecond)
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	l, clock := newFakeLimiter(100)
	for i := 0; i < 3; i++ {
		l.Wait()
	}

	// a 50ms stall covers five frame periods
	clock.t = clock.t.Add(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		before := clock.t
		l.Wait()
		waited := clock.t.Sub(before)
		assert.GreaterOrEqual(t, waited, 9*time.Millisecond, "frame %d after the hitch burst", i)
		assert.Less(t, waited, 11*time.Millisecond, "frame %d after the hitch", i)
	}
}

func TestFPSLimiterLimitReadEveryFrame(t *testing.T) {
	fps := 100
	clock := &fakeClock{t: time.Unix(1000, 0), tick: 10 * time.Microsecond}
	l := NewFPSLimiter(func() int { return fps })
	l.now = clock.now
	l.sleep = clock.sleep

	l.Wait()
	fps = 0
	before := clock.t
	l.Wait()
	assert.Equal(t, before, clock.t)
	assert.True(t, l.deadline.IsZero())
}
