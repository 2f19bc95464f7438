package anim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestClockStep(t *testing.T) {
	c := NewClock(20)
	for range 3 {
		c.Step()
	}
	if math.Abs(c.Time-0.06) > 1e-12 {
		t.Errorf("Time after 3 steps = %v, want 0.06", c.Time)
	}
}

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name string
		dt   time.Duration
		want float64
	}{
		{"one second is sixty frames", time.Second, 60},
		{"partial frame is dropped", FrameInterval / 2, 0},
		{"zero", 0, 0},
		{"negative", -time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(1000)
			if got := c.Advance(tt.dt); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Advance(%v) = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
}

func TestClockMonotonic(t *testing.T) {
	c := NewClock(5)
	prev := c.Time
	for range 100 {
		now := c.Step()
		if now < prev {
			t.Fatalf("clock went backwards: %v -> %v", prev, now)
		}
		prev = now
	}
	c.Reset()
	if c.Time != 0 {
		t.Errorf("Reset() left Time = %v", c.Time)
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewClock(10)
	frames := 0

	err := Loop(ctx, time.Millisecond, c, func(float64) error {
		frames++
		if frames == 5 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Errorf("Loop() error = %v, want nil on cancel", err)
	}
	if frames < 5 {
		t.Errorf("frames = %d, want at least 5", frames)
	}
}

func TestLoopStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	err := Loop(context.Background(), time.Millisecond, NewClock(1), func(float64) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Loop() error = %v, want %v", err, boom)
	}
}
