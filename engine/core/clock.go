package core

import "time"

// Clock measures elapsed seconds between Start and the last Update.
type Clock struct {
	startTime time.Time
	elapsed   float64
	now       func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource builds a clock reading time from now instead of the wall clock.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = c.now().Sub(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Now reads the clock's time source.
func (c *Clock) Now() time.Time {
	return c.now()
}

// SystemTime converts t to fractional seconds since the Unix epoch.
func SystemTime(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
