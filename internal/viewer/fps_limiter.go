package viewer

import "time"

// spinWindow is the tail of each frame spent polling the clock instead of
// sleeping, since Sleep overshoots by up to a scheduler tick
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces frames to a cap read once per frame from limit.
// A cap of zero or less disables pacing.
type FPSLimiter struct {
	limit func() int
	now   func() time.Time
	sleep func(time.Duration)

	deadline time.Time
}

// NewFPSLimiter paces against the cap returned by limit
func NewFPSLimiter(limit func() int) *FPSLimiter {
	return &FPSLimiter{limit: limit, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame deadline. Deadlines advance by a fixed
// period so per-frame jitter does not accumulate; after a hitch longer than
// one period the schedule restarts from now instead of bursting.
func (f *FPSLimiter) Wait() {
	fps := 0
	if f.limit != nil {
		fps = f.limit()
	}
	if fps <= 0 {
		f.deadline = time.Time{}
		return
	}
	period := time.Second / time.Duration(fps)

	now := f.now()
	switch {
	case f.deadline.IsZero():
		f.deadline = now.Add(period)
	case now.Sub(f.deadline) > period:
		f.deadline = now.Add(period)
	default:
		f.deadline = f.deadline.Add(period)
	}

	for {
		left := f.deadline.Sub(f.now())
		if left <= 0 {
			return
		}
		if left > spinWindow {
			f.sleep(left - spinWindow)
		}
	}
}
