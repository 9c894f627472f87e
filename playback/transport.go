// Package playback steps through a simulated trajectory in time, the way an editor's
// play/pause/seek controls do.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// DefaultStep is both the tick interval and the simulated time each tick advances.
const DefaultStep = 20 * time.Millisecond

// Frame is what a view needs to draw the robot at one instant.
type Frame struct {
	Time       float64
	Pose       simulation.Pose
	TrailIndex int // index of the last trail point reached; -1 without a result
	Playing    bool
}

// Transport is a play/pause/seek controller over a simulation result. It is safe for
// concurrent use.
type Transport struct {
	clk  clock.Clock
	step time.Duration

	mu      sync.Mutex
	result  *simulation.Result
	current float64
	playing bool
}

// NewTransport returns a paused Transport with nothing loaded. A non-positive step uses
// DefaultStep.
func NewTransport(clk clock.Clock, step time.Duration) *Transport {
	if step <= 0 {
		step = DefaultStep
	}
	return &Transport{clk: clk, step: step}
}

// Load replaces the result being played and rewinds to t=0, paused.
func (t *Transport) Load(res *simulation.Result) Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.result = res
	t.current = 0
	t.playing = false
	return t.frameLocked()
}

// Play starts playback, from the beginning if the end has been reached. It does nothing
// without a result.
func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result.Empty() {
		return
	}
	if t.current >= t.result.TotalTime-utils.Epsilon {
		t.current = 0
	}
	t.playing = true
}

// Pause stops playback at the current time.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
}

// Toggle plays when paused and pauses when playing, returning whether it is now playing.
func (t *Transport) Toggle() bool {
	if t.Playing() {
		t.Pause()
		return false
	}
	t.Play()
	return t.Playing()
}

// Playing reports whether playback is running.
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Seek moves to seconds, clamped to the result's duration.
func (t *Transport) Seek(seconds float64) Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0.0
	if !t.result.Empty() {
		total = t.result.TotalTime
	}
	t.current = utils.Clamp(seconds, 0, total)
	return t.frameLocked()
}

// Tick advances playback by one step, pausing at the end of the result.
func (t *Transport) Tick() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		t.current += t.step.Seconds()
		if t.current >= t.result.TotalTime {
			t.current = t.result.TotalTime
			t.playing = false
		}
	}
	return t.frameLocked()
}

// Frame returns the frame at the current time.
func (t *Transport) Frame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameLocked()
}

// RobotVisible reports whether a view should draw the robot: there must be a result,
// and a paused transport at the very start shows only the path.
func (t *Transport) RobotVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result.Empty() {
		return false
	}
	return t.playing || !utils.Float64AlmostEqual(t.current, 0, utils.Epsilon)
}

// Run ticks the transport every step of its clock while playing and hands each frame to
// onFrame. It returns when ctx is done.
func (t *Transport) Run(ctx context.Context, onFrame func(Frame)) error {
	ticker := t.clk.Ticker(t.step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !t.Playing() {
			continue
		}
		if onFrame != nil {
			onFrame(t.Tick())
		} else {
			t.Tick()
		}
	}
}

func (t *Transport) frameLocked() Frame {
	f := Frame{Time: t.current, TrailIndex: -1, Playing: t.playing}
	if i := t.result.IndexAt(t.current); i >= 0 {
		f.Pose = t.result.Poses[i]
		f.TrailIndex = i
	}
	return f
}
