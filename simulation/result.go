package simulation

import (
	"sort"

	"github.com/golang/geo/r2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// Pose is a field position in meters and a heading in radians within (-pi, pi].
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

// Point returns the position of the pose.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// StopReason records why a simulation ended.
type StopReason string

// The ways a simulation can end.
const (
	StopDegenerate StopReason = "degenerate" // fewer than two anchors
	StopHandoff    StopReason = "handoff"    // entered the handoff radius of the last anchor
	StopGoal       StopReason = "goal"       // settled at the end of the last segment
	StopGuard      StopReason = "guard"      // ran out of time
)

// Result is a sampled trajectory. Times, Poses and Speeds are parallel; Times is
// strictly increasing and starts at 0. Trail holds one point per sample.
type Result struct {
	Times     []float64
	Poses     []Pose
	Speeds    []ChassisSpeeds
	Trail     []r2.Point
	TotalTime float64

	Timestep   float64
	StopReason StopReason
}

// record appends a sample, replacing the last one when t does not advance past it.
func (r *Result) record(t float64, pose Pose, speeds ChassisSpeeds) {
	if n := len(r.Times); n > 0 && t <= r.Times[n-1]+utils.Epsilon {
		r.Poses[n-1] = pose
		r.Speeds[n-1] = speeds
		r.Trail[n-1] = pose.Point()
		return
	}
	r.Times = append(r.Times, t)
	r.Poses = append(r.Poses, pose)
	r.Speeds = append(r.Speeds, speeds)
	r.Trail = append(r.Trail, pose.Point())
	r.TotalTime = t
}

// Len returns the number of samples.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Times)
}

// Empty reports whether the result has no samples.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// IndexAt returns the index of the last sample at or before t, or -1 if there are no
// samples. Times before the first sample map to 0.
func (r *Result) IndexAt(t float64) int {
	n := r.Len()
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(i int) bool { return r.Times[i] > t+utils.Epsilon }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// PoseAt returns the pose at time t, clamped to [0, TotalTime], interpolating between
// the samples either side of it.
func (r *Result) PoseAt(t float64) (Pose, bool) {
	i := r.IndexAt(t)
	if i < 0 {
		return Pose{}, false
	}
	if i == r.Len()-1 || t <= r.Times[i] {
		return r.Poses[i], true
	}
	t0, t1 := r.Times[i], r.Times[i+1]
	alpha := utils.Clamp((t-t0)/(t1-t0), 0, 1)
	a, b := r.Poses[i], r.Poses[i+1]
	return Pose{
		X:       a.X + (b.X-a.X)*alpha,
		Y:       a.Y + (b.Y-a.Y)*alpha,
		Heading: utils.InterpolateAngle(a.Heading, b.Heading, alpha),
	}, true
}

// Final returns the last pose.
func (r *Result) Final() (Pose, bool) {
	if r.Empty() {
		return Pose{}, false
	}
	return r.Poses[len(r.Poses)-1], true
}
