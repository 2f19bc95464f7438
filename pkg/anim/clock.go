// Package anim provides the frame clock shared by the animated generators.
//
// Animation is modelled as a pure function of time: generators expose a
// Frame(t) method and a [Clock] decides what t is. Nothing here depends on a
// display, so animations can be stepped deterministically in tests and driven
// by a ticker ([Loop]) in the server or the terminal preview.
package anim

import (
	"context"
	"time"
)

// FrameInterval is the nominal display refresh interval (60 Hz).
const FrameInterval = time.Second / 60

// Clock is a monotonically increasing time accumulator.
// Each frame advances Time by Speed/1000.
type Clock struct {
	Time  float64
	Speed float64
}

// NewClock returns a clock at t=0 advancing by speed/1000 per frame.
func NewClock(speed float64) *Clock {
	return &Clock{Speed: speed}
}

// Step advances the clock by exactly one frame and returns the new time.
func (c *Clock) Step() float64 {
	c.Time += c.Speed / 1000
	return c.Time
}

// Advance advances the clock by the number of whole frames that fit in dt
// and returns the new time. Partial frames are dropped.
func (c *Clock) Advance(dt time.Duration) float64 {
	frames := int64(dt / FrameInterval)
	if frames > 0 {
		c.Time += float64(frames) * c.Speed / 1000
	}
	return c.Time
}

// Reset rewinds the clock to t=0.
func (c *Clock) Reset() { c.Time = 0 }

// Loop calls fn once per interval with the clock's new time until ctx is
// cancelled or fn returns an error. The ticker is released on every return
// path. A context cancellation is not reported as an error.
func Loop(ctx context.Context, interval time.Duration, c *Clock, fn func(t float64) error) error {
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := fn(c.Step()); err != nil {
				return err
			}
		}
	}
}
