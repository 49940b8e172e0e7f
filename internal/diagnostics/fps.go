// Package diagnostics measures the frame rate.
package diagnostics

import "time"

// MaxSamples covers two seconds at 60 frames per second.
const MaxSamples = 120

// FPSCounter averages the frame rate over the last MaxSamples frames.
type FPSCounter struct {
	samples [MaxSamples]float64
	next    int
	filled  int
	current float64
	average float64
}

// Update records a frame that took dt. Non-positive durations are ignored.
func (c *FPSCounter) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.current = 1 / dt.Seconds()
	c.samples[c.next] = c.current
	c.next = (c.next + 1) % MaxSamples
	c.filled = min(c.filled+1, MaxSamples)

	sum := 0.0
	for _, s := range c.samples[:c.filled] {
		sum += s
	}
	c.average = sum / float64(c.filled)
}

// Current returns the rate implied by the last frame alone.
func (c *FPSCounter) Current() float64 {
	return c.current
}

// Average returns the mean rate over the recorded samples.
func (c *FPSCounter) Average() float64 {
	return c.average
}
