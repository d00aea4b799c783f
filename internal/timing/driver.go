// Package timing provides the fixed-rate frame driver for the engine.
// It converts a target frame rate into a fixed delay and blocks the calling
// goroutine between frames.
package timing

import "time"

// DefaultFPS is used when a non-positive frame rate is requested.
const DefaultFPS = 12

// Driver runs a per-frame callback at a fixed interval.
type Driver struct {
	fps   int
	delay time.Duration
	dt    float64 // delay in seconds, for animation accumulation
	sleep func(time.Duration)
}

// NewDriver creates a driver targeting the given frame rate.
func NewDriver(fps int) *Driver {
	d := &Driver{sleep: time.Sleep}
	d.SetFPS(fps)
	return d
}

// SetFPS changes the frame rate. The delay becomes 1,000,000/fps microseconds
// and dt is recomputed immediately.
func (d *Driver) SetFPS(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	d.fps = fps
	d.delay = time.Duration(1_000_000/fps) * time.Microsecond
	d.dt = d.delay.Seconds()
}

// SetDelay sets the per-frame delay directly. The frame rate is derived from
// it and dt is recomputed immediately. Non-positive delays are ignored.
func (d *Driver) SetDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	d.delay = delay
	d.dt = delay.Seconds()
	d.fps = max(1, int(time.Second/delay))
}

// FPS returns the current frame rate.
func (d *Driver) FPS() int {
	return d.fps
}

// Delay returns the fixed delay between frames.
func (d *Driver) Delay() time.Duration {
	return d.delay
}

// DT returns the frame interval in seconds.
func (d *Driver) DT() float64 {
	return d.dt
}

// SetSleep replaces the function used to wait between frames.
// Tests use it to run the loop without real delays.
func (d *Driver) SetSleep(sleep func(time.Duration)) {
	if sleep == nil {
		sleep = time.Sleep
	}
	d.sleep = sleep
}

// Run calls frame repeatedly, sleeping Delay() after each call, until frame
// returns false. It is the sole caller of frame and never calls it reentrantly.
// Changes to the delay made from inside frame apply to the following wait.
func (d *Driver) Run(frame func() bool) {
	for frame() {
		d.sleep(d.delay)
	}
}
