package hal

import "time"

// hostTime is the refresh clock. The window runner feeds it wall time since
// start; the headless runner feeds it a synthetic timeline so runs repeat.
type hostTime struct {
	start time.Time
	now   float64
}

func newHostTime() *hostTime {
	return &hostTime{start: time.Now()}
}

func (t *hostTime) Now() float64 { return t.now }

func (t *hostTime) set(ms float64) {
	// Monotonic even if a caller passes an older value.
	if ms > t.now {
		t.now = ms
	}
}

func (t *hostTime) elapsed() float64 {
	return float64(time.Since(t.start)) / float64(time.Millisecond)
}
