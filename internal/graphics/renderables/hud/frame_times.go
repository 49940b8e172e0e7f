package hud

import "time"

// frameHistory is the number of frames averaged by FrameTimes.
const frameHistory = 60

// FrameTimes keeps rolling statistics over the last render durations.
type FrameTimes struct {
	samples [frameHistory]time.Duration
	next    int
	count   int
}

func (f *FrameTimes) Add(d time.Duration) {
	f.samples[f.next] = d
	f.next = (f.next + 1) % frameHistory
	if f.count < frameHistory {
		f.count++
	}
}

// Last returns the most recent sample.
func (f *FrameTimes) Last() time.Duration {
	if f.count == 0 {
		return 0
	}
	return f.samples[(f.next+frameHistory-1)%frameHistory]
}

// Stats returns the average, minimum and maximum of the kept samples.
func (f *FrameTimes) Stats() (avg, lo, hi time.Duration) {
	if f.count == 0 {
		return 0, 0, 0
	}
	lo = f.samples[0]
	var total time.Duration
	for _, d := range f.samples[:f.count] {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return total / time.Duration(f.count), lo, hi
}
