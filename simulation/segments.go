package simulation

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// Keyframe is a heading the robot should hold at TRatio of the way along a segment.
type Keyframe struct {
	TRatio  float64
	Heading float64

	// Overrides of the angular limits while approaching this keyframe. Not positive means unset.
	MaxVelocityDegPerSec      float64
	MaxAccelerationDegPerSec2 float64

	// scan is the position in element-scan order at which the keyframe was produced.
	scan int
}

// Segment is the straight line between two consecutive anchors.
type Segment struct {
	Start     r2.Point
	End       r2.Point
	Length    float64
	Direction r2.Point // unit vector, (1, 0) for zero-length segments
	Keyframes []Keyframe

	// Target is the translation target of the anchor the segment ends at.
	Target *pathmodel.TranslationTarget
}

// Segments is the geometric decomposition of a path.
type Segments struct {
	Segments      []Segment
	Anchors       []r2.Point
	AnchorIndices []int

	// DroppedRotations lists element indices of rotation targets that do not sit between
	// two connected anchors and therefore have no segment to live on.
	DroppedRotations []int
}

// TotalLength returns the summed length of all segments.
func (s Segments) TotalLength() float64 {
	return lo.SumBy(s.Segments, func(seg Segment) float64 { return seg.Length })
}

func newSegment(start, end r2.Point, target *pathmodel.TranslationTarget) Segment {
	seg := Segment{Start: start, End: end, Direction: r2.Point{X: 1}, Target: target}
	if length := end.Sub(start).Norm(); length > utils.Epsilon {
		seg.Length = length
		seg.Direction = end.Sub(start).Mul(1 / length)
	}
	return seg
}

// BuildSegments splits p into segments between consecutive anchors and attaches the
// heading keyframes of its rotation targets and waypoints. With fewer than two anchors
// no segments are produced.
func BuildSegments(p *pathmodel.Path) Segments {
	anchors := p.Anchors()
	out := Segments{
		Anchors:       lo.Map(anchors, func(a pathmodel.Anchor, _ int) r2.Point { return a.Position }),
		AnchorIndices: lo.Map(anchors, func(a pathmodel.Anchor, _ int) int { return a.Index }),
	}
	for i := 0; i+1 < len(anchors); i++ {
		out.Segments = append(out.Segments, newSegment(anchors[i].Position, anchors[i+1].Position, anchors[i+1].Translation))
	}

	scan := 0
	add := func(segIdx int, kf Keyframe) {
		kf.scan = scan
		scan++
		out.Segments[segIdx].Keyframes = append(out.Segments[segIdx].Keyframes, kf)
	}

	for idx, e := range p.Elements {
		switch el := e.(type) {
		case *pathmodel.TranslationTarget:
		case *pathmodel.RotationTarget:
			// the first anchor after idx; the rotation sits between it and the one before
			next := sort.SearchInts(out.AnchorIndices, idx)
			prev := next - 1
			if prev < 0 || next >= len(anchors) || next != prev+1 {
				out.DroppedRotations = append(out.DroppedRotations, idx)
				continue
			}
			add(prev, Keyframe{
				TRatio:                    utils.Clamp(el.TRatio, 0, 1),
				Heading:                   el.RotationRadians,
				MaxVelocityDegPerSec:      el.MaxVelocityDegPerSec,
				MaxAccelerationDegPerSec2: el.MaxAccelerationDegPerSec2,
			})
		case *pathmodel.Waypoint:
			ord := sort.SearchInts(out.AnchorIndices, idx)
			kf := Keyframe{
				Heading:                   el.Rotation.RotationRadians,
				MaxVelocityDegPerSec:      el.Rotation.MaxVelocityDegPerSec,
				MaxAccelerationDegPerSec2: el.Rotation.MaxAccelerationDegPerSec2,
			}
			if ord < len(out.Segments) {
				kf.TRatio = 0
				add(ord, kf)
			}
			if ord > 0 && ord-1 < len(out.Segments) {
				kf.TRatio = 1
				add(ord-1, kf)
			}
		default:
			panic("simulation: unhandled path element")
		}
	}

	for i := range out.Segments {
		out.Segments[i].Keyframes = sortKeyframes(out.Segments[i].Keyframes)
	}
	return out
}

// sortKeyframes orders keyframes by TRatio and collapses entries closer than Epsilon,
// keeping whichever was scanned last.
func sortKeyframes(kfs []Keyframe) []Keyframe {
	if len(kfs) == 0 {
		return nil
	}
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].TRatio < kfs[j].TRatio })
	out := make([]Keyframe, 0, len(kfs))
	groupT := math.Inf(-1)
	for _, kf := range kfs {
		if math.Abs(kf.TRatio-groupT) < utils.Epsilon {
			if kf.scan > out[len(out)-1].scan {
				out[len(out)-1] = kf
			}
			continue
		}
		out = append(out, kf)
		groupT = kf.TRatio
	}
	return out
}
