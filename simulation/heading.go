package simulation

import (
	"math"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// headingAt returns the desired heading at fraction t along seg, the rate of change of
// that heading per meter travelled, and the index of the keyframe being approached
// (-1 when the segment has none). When the first keyframe is past the start of the
// segment, startHeading is held at t=0 and blended toward it.
func headingAt(seg *Segment, t, startHeading float64) (float64, float64, int) {
	kfs := seg.Keyframes
	if len(kfs) == 0 {
		return startHeading, 0, -1
	}

	offset := 0
	if kfs[0].TRatio > utils.Epsilon {
		offset = 1
	}
	frame := func(i int) (float64, float64) {
		if i < offset {
			return 0, startHeading
		}
		return kfs[i-offset].TRatio, kfs[i-offset].Heading
	}
	length := math.Max(seg.Length, utils.Epsilon)

	frames := len(kfs) + offset
	for i := 0; i+1 < frames; i++ {
		t0, th0 := frame(i)
		t1, th1 := frame(i + 1)
		delta := utils.ShortestAngularDistance(th1, th0)
		rate := delta / math.Max((t1-t0)*length, utils.Epsilon)
		if t <= t0+1e-12 {
			return th0, rate, i + 1 - offset
		}
		if t <= t1+1e-12 {
			alpha := (t - t0) / math.Max(t1-t0, utils.Epsilon)
			return utils.InterpolateAngle(th0, th1, alpha), rate, i + 1 - offset
		}
	}
	_, last := frame(frames - 1)
	return last, 0, len(kfs) - 1
}

// angularLimits resolves the angular velocity and acceleration limits in radians while
// approaching keyframe kf of seg.
func angularLimits(seg *Segment, kf int, maxOmega, maxAlpha float64) (float64, float64) {
	if kf < 0 || kf >= len(seg.Keyframes) {
		return maxOmega, maxAlpha
	}
	k := seg.Keyframes[kf]
	return resolveAngular(k.MaxVelocityDegPerSec, maxOmega), resolveAngular(k.MaxAccelerationDegPerSec2, maxAlpha)
}

func resolveAngular(overrideDeg, global float64) float64 {
	if overrideDeg > 0 {
		return utils.DegToRad(overrideDeg)
	}
	return global
}
