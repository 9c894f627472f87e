// Package pathmodel defines the ordered elements a robot path is built from: translation
// targets the robot drives through, rotation targets it turns to along the way, and
// waypoints that pin both at once.
package pathmodel

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Kind names an element variant. It is also the "type" field of the file format.
type Kind string

// The element kinds.
const (
	KindTranslation Kind = "translation"
	KindRotation    Kind = "rotation"
	KindWaypoint    Kind = "waypoint"
)

// Element is one entry of a Path. The set of implementations is closed: *TranslationTarget,
// *RotationTarget and *Waypoint.
type Element interface {
	Kind() Kind
	isElement()
}

// TranslationTarget is a position the robot must drive through. Overrides that are not
// positive defer to the path's global constraints.
type TranslationTarget struct {
	X float64
	Y float64

	FinalVelocityMetersPerSec       float64
	MaxVelocityMetersPerSec         float64
	MaxAccelerationMetersPerSec2    float64
	IntermediateHandoffRadiusMeters float64
}

// RotationTarget is a heading the robot should hold at TRatio of the way between the
// anchors on either side of it in the element list.
type RotationTarget struct {
	RotationRadians float64
	TRatio          float64

	MaxVelocityDegPerSec      float64
	MaxAccelerationDegPerSec2 float64
}

// Waypoint is a translation target and a rotation target sharing one position. Its
// rotation applies exactly at the position, so Rotation.TRatio is ignored.
type Waypoint struct {
	Translation TranslationTarget
	Rotation    RotationTarget
}

// Kind returns KindTranslation.
func (*TranslationTarget) Kind() Kind { return KindTranslation }

// Kind returns KindRotation.
func (*RotationTarget) Kind() Kind { return KindRotation }

// Kind returns KindWaypoint.
func (*Waypoint) Kind() Kind { return KindWaypoint }

func (*TranslationTarget) isElement() {}
func (*RotationTarget) isElement()    {}
func (*Waypoint) isElement()          {}

// Position returns the target's position in meters.
func (tt *TranslationTarget) Position() r2.Point {
	return r2.Point{X: tt.X, Y: tt.Y}
}

// AnchorTranslation returns the translation target of an anchor element (a translation
// target or a waypoint) and whether e is an anchor at all.
func AnchorTranslation(e Element) (*TranslationTarget, bool) {
	switch el := e.(type) {
	case *TranslationTarget:
		return el, true
	case *Waypoint:
		return &el.Translation, true
	case *RotationTarget:
		return nil, false
	default:
		panic(unknownElement(e))
	}
}

// CloneElement returns a deep copy of e.
func CloneElement(e Element) Element {
	switch el := e.(type) {
	case *TranslationTarget:
		cp := *el
		return &cp
	case *RotationTarget:
		cp := *el
		return &cp
	case *Waypoint:
		cp := *el
		return &cp
	default:
		panic(unknownElement(e))
	}
}

func unknownElement(e Element) string {
	return fmt.Sprintf("pathmodel: unknown element type %T", e)
}
