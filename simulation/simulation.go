// Package simulation turns a path into a time-sampled trajectory of a holonomic robot.
// The robot drives the straight segments between anchors under velocity and
// acceleration limits while turning toward the headings of the path's rotation
// targets and waypoints.
package simulation

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// DefaultTimestep is the integration step used when a non-positive one is requested.
const DefaultTimestep = 0.02

const (
	minGuardSeconds     = 25.0
	guardFactor         = 5.0
	minGuardSpeed       = 0.5 // m/s
	stopSpeedMargin     = 0.05
	stopSpeedFloor      = 0.05
	stopOmegaDegPerSec  = 5.0
	headingRateEpsilon  = 1e-6
	startKeyframeWindow = 1e-6
)

// Simulator runs simulations. It holds no state between runs, so one Simulator may be
// used from several goroutines.
type Simulator struct {
	logger logging.Logger
}

// NewSimulator returns a Simulator that logs to logger.
func NewSimulator(logger logging.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// Simulate runs p under c with a silent logger.
func Simulate(p *pathmodel.Path, c config.Constraints, dt float64) *Result {
	return NewSimulator(logging.NewBlankLogger("simulation")).Simulate(p, c, dt)
}

// Simulate integrates the robot's motion along p in steps of dt seconds. The path's own
// constraints take precedence over c. The result always starts with the initial pose at
// t=0 unless p has no anchors at all.
func (s *Simulator) Simulate(p *pathmodel.Path, c config.Constraints, dt float64) *Result {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = DefaultTimestep
	}
	built := BuildSegments(p)
	for _, idx := range built.DroppedRotations {
		s.logger.Warnw("rotation target is not between two anchors, ignoring it", "element", idx)
	}

	res := &Result{Timestep: dt, StopReason: StopDegenerate}
	if len(built.Segments) == 0 {
		if len(built.Anchors) > 0 {
			a := built.Anchors[0]
			res.record(0, Pose{X: a.X, Y: a.Y}, ChassisSpeeds{})
		}
		return res
	}

	run := newRun(built, c.Merge(p.Constraints).Resolve(), dt)
	s.logger.Debugw("simulating path",
		"segments", len(run.segs),
		"length", run.total,
		"guard", run.guard,
		"dt", dt,
	)
	run.integrate(res)
	s.logger.Debugw("simulation finished",
		"samples", res.Len(),
		"total_time", res.TotalTime,
		"reason", res.StopReason,
	)
	return res
}

// segmentLimits are the translational limits in force on one segment.
type segmentLimits struct {
	maxVelocity     float64
	maxAcceleration float64
	handoffRadius   float64
}

// run is the state of a single integration.
type run struct {
	segs   []Segment
	limits []segmentLimits
	global config.ResolvedConstraints
	dt     float64

	startHeadings  []float64 // heading the robot is expected to hold entering each segment
	remainingAfter []float64 // summed length of the segments after each one
	finalVelocity  float64
	total          float64
	guard          float64
}

func newRun(built Segments, global config.ResolvedConstraints, dt float64) *run {
	n := len(built.Segments)
	r := &run{
		segs:           built.Segments,
		limits:         make([]segmentLimits, n),
		global:         global,
		dt:             dt,
		startHeadings:  make([]float64, n),
		remainingAfter: make([]float64, n),
		total:          built.TotalLength(),
	}

	slowest := math.Inf(1)
	for i := range r.segs {
		target := r.segs[i].Target
		r.limits[i] = segmentLimits{
			maxVelocity:     config.Resolve(target.MaxVelocityMetersPerSec, global.MaxVelocity, config.DefaultMaxVelocityMetersPerSec),
			maxAcceleration: config.Resolve(target.MaxAccelerationMetersPerSec2, global.MaxAcceleration, config.DefaultMaxAccelerationMetersPerSec2),
			handoffRadius:   config.Resolve(target.IntermediateHandoffRadiusMeters, global.HandoffRadius, config.DefaultIntermediateHandoffRadiusMeters),
		}
		slowest = math.Min(slowest, r.limits[i].maxVelocity)
	}
	for i := n - 2; i >= 0; i-- {
		r.remainingAfter[i] = r.remainingAfter[i+1] + r.segs[i+1].Length
	}

	first := &r.segs[0]
	r.startHeadings[0] = math.Atan2(first.Direction.Y, first.Direction.X)
	if len(first.Keyframes) > 0 && first.Keyframes[0].TRatio <= startKeyframeWindow {
		r.startHeadings[0] = first.Keyframes[0].Heading
	}
	for i := 1; i < n; i++ {
		r.startHeadings[i] = r.startHeadings[i-1]
		if kfs := r.segs[i-1].Keyframes; len(kfs) > 0 {
			r.startHeadings[i] = kfs[len(kfs)-1].Heading
		}
	}

	r.finalVelocity = config.Resolve(r.segs[n-1].Target.FinalVelocityMetersPerSec, global.FinalVelocity, 0)
	r.guard = math.Max(minGuardSeconds, r.total/math.Max(minGuardSpeed, slowest)*guardFactor)
	return r
}

func (r *run) integrate(res *Result) {
	first := &r.segs[0]
	pos := first.Start
	heading := utils.WrapAngle(r.startHeadings[0])
	speeds := speedsFrom(first.Direction.Mul(r.global.InitialVelocity), 0)
	speeds = clampSpeeds(speeds, r.limits[0].maxVelocity, r.global.MaxAngularVelocity)
	res.record(0, Pose{X: pos.X, Y: pos.Y, Heading: heading}, speeds)

	stopSpeed := math.Max(stopSpeedFloor, r.finalVelocity+stopSpeedMargin)
	stopOmega := utils.DegToRad(stopOmegaDegPerSec)
	last := len(r.segs) - 1
	active := 0
	res.StopReason = StopGuard

	for tick := 1; float64(tick-1)*r.dt <= r.guard; tick++ {
		for active <= last && r.reached(active, pos) {
			active++
		}
		if active > last {
			res.StopReason = StopHandoff
			return
		}
		seg := &r.segs[active]
		lim := r.limits[active]

		progress := r.progress(seg, pos)
		ratio := 0.0
		if seg.Length > utils.Epsilon {
			ratio = progress / seg.Length
		}

		target, rate, kf := headingAt(seg, ratio, r.startHeadings[active])
		maxOmega, maxAlpha := angularLimits(seg, kf, r.global.MaxAngularVelocity, r.global.MaxAngularAcceleration)
		rate = math.Abs(rate)

		// translational speed along the segment
		current := math.Max(0, speeds.Linear().Dot(seg.Direction))
		remaining := seg.Length - progress + r.remainingAfter[active]
		allowed := math.Sqrt(utils.Square(r.finalVelocity) + 2*lim.maxAcceleration*remaining)
		desired := math.Min(lim.maxVelocity, allowed)
		if rate > headingRateEpsilon {
			desired = math.Min(desired, maxOmega/rate)
		}
		desired = utils.Clamp(desired,
			math.Max(0, current-lim.maxAcceleration*r.dt),
			current+lim.maxAcceleration*r.dt)

		// reach the target heading in one tick if the limits allow it
		omega := utils.ClampMagnitude(utils.ShortestAngularDistance(target, heading)/r.dt, maxOmega)

		accelLimit := lim.maxAcceleration
		if rate > headingRateEpsilon {
			accelLimit = math.Min(accelLimit, maxAlpha/rate)
		}
		next := limitAcceleration(speedsFrom(seg.Direction.Mul(desired), omega), speeds, r.dt, accelLimit, maxAlpha)
		next = clampSpeeds(next, lim.maxVelocity, maxOmega)

		pos = pos.Add(next.Linear().Mul(r.dt))
		heading = utils.WrapAngle(heading + next.Omega*r.dt)
		speeds = next
		res.record(float64(tick)*r.dt, Pose{X: pos.X, Y: pos.Y, Heading: heading}, speeds)

		if active == last &&
			seg.Length-r.progress(seg, pos) <= r.global.EndTranslationTolerance &&
			speeds.Speed() <= stopSpeed &&
			math.Abs(speeds.Omega) <= stopOmega {
			res.StopReason = StopGoal
			return
		}
	}
}

// reached reports whether the robot at pos is done with segment i. An intermediate
// segment is done inside the handoff radius of its end or once the robot has passed the
// end along the segment's direction. The last segment is done inside the end
// translation tolerance.
func (r *run) reached(i int, pos r2.Point) bool {
	seg := &r.segs[i]
	if i == len(r.segs)-1 {
		return pos.Sub(seg.End).Norm() <= r.global.EndTranslationTolerance
	}
	if pos.Sub(seg.End).Norm() <= r.limits[i].handoffRadius {
		return true
	}
	return seg.Length > utils.Epsilon && pos.Sub(seg.Start).Dot(seg.Direction) > seg.Length
}

// progress is the distance travelled along seg, clamped to [0, Length].
func (r *run) progress(seg *Segment, pos r2.Point) float64 {
	if seg.Length <= utils.Epsilon {
		return 0
	}
	return utils.Clamp(pos.Sub(seg.Start).Dot(seg.Direction), 0, seg.Length)
}
