package pathmodel

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// defaultRotationTRatio places a rotation target without an explicit t_ratio halfway
// between its anchors.
const defaultRotationTRatio = 0.5

// elementJSON is the on-disk form of every element kind. Angles are stored in degrees.
type elementJSON struct {
	Type            Kind     `json:"type"`
	XMeters         *float64 `json:"x_meters,omitempty"`
	YMeters         *float64 `json:"y_meters,omitempty"`
	RotationDegrees *float64 `json:"rotation_degrees,omitempty"`
	TRatio          *float64 `json:"t_ratio,omitempty"`

	FinalVelocityMetersPerSec       float64 `json:"final_velocity_meters_per_sec,omitempty"`
	MaxVelocityMetersPerSec         float64 `json:"max_velocity_meters_per_sec,omitempty"`
	MaxAccelerationMetersPerSec2    float64 `json:"max_acceleration_meters_per_sec2,omitempty"`
	IntermediateHandoffRadiusMeters float64 `json:"intermediate_handoff_radius_meters,omitempty"`
	MaxVelocityDegPerSec            float64 `json:"max_velocity_deg_per_sec,omitempty"`
	MaxAccelerationDegPerSec2       float64 `json:"max_acceleration_deg_per_sec2,omitempty"`
}

type pathJSON struct {
	Constraints config.Constraints `json:"constraints"`
	Elements    []json.RawMessage  `json:"elements"`
}

// MarshalJSON encodes the path in the path file format.
func (p *Path) MarshalJSON() ([]byte, error) {
	out := pathJSON{Constraints: p.Constraints, Elements: make([]json.RawMessage, 0, len(p.Elements))}
	for _, e := range p.Elements {
		raw, err := json.Marshal(toElementJSON(e))
		if err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the path file format. Errors name the offending element index.
func (p *Path) UnmarshalJSON(data []byte) error {
	var in pathJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "decoding path")
	}
	elements := make([]Element, 0, len(in.Elements))
	for i, raw := range in.Elements {
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
			return errors.Errorf("element %d is not an object", i)
		}
		var ej elementJSON
		if err := json.Unmarshal(raw, &ej); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		e, err := fromElementJSON(ej)
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		elements = append(elements, e)
	}
	p.Elements = elements
	p.Constraints = in.Constraints
	return nil
}

func toElementJSON(e Element) elementJSON {
	ej := elementJSON{Type: e.Kind()}
	switch el := e.(type) {
	case *TranslationTarget:
		setTranslation(&ej, el)
	case *RotationTarget:
		deg := utils.RadToDeg(el.RotationRadians)
		t := el.TRatio
		ej.RotationDegrees = &deg
		ej.TRatio = &t
		setRotationLimits(&ej, el)
	case *Waypoint:
		deg := utils.RadToDeg(el.Rotation.RotationRadians)
		ej.RotationDegrees = &deg
		setTranslation(&ej, &el.Translation)
		setRotationLimits(&ej, &el.Rotation)
	default:
		panic(unknownElement(e))
	}
	return ej
}

func setTranslation(ej *elementJSON, tt *TranslationTarget) {
	x, y := tt.X, tt.Y
	ej.XMeters = &x
	ej.YMeters = &y
	ej.FinalVelocityMetersPerSec = tt.FinalVelocityMetersPerSec
	ej.MaxVelocityMetersPerSec = tt.MaxVelocityMetersPerSec
	ej.MaxAccelerationMetersPerSec2 = tt.MaxAccelerationMetersPerSec2
	ej.IntermediateHandoffRadiusMeters = tt.IntermediateHandoffRadiusMeters
}

func setRotationLimits(ej *elementJSON, rt *RotationTarget) {
	ej.MaxVelocityDegPerSec = rt.MaxVelocityDegPerSec
	ej.MaxAccelerationDegPerSec2 = rt.MaxAccelerationDegPerSec2
}

func fromElementJSON(ej elementJSON) (Element, error) {
	switch ej.Type {
	case KindTranslation:
		tt, err := translationFromJSON(ej)
		if err != nil {
			return nil, err
		}
		return tt, nil
	case KindRotation:
		if ej.RotationDegrees == nil {
			return nil, errors.New("rotation missing required field \"rotation_degrees\"")
		}
		rt := rotationFromJSON(ej)
		rt.TRatio = defaultRotationTRatio
		if ej.TRatio != nil {
			rt.TRatio = *ej.TRatio
		}
		return &rt, nil
	case KindWaypoint:
		tt, err := translationFromJSON(ej)
		if err != nil {
			return nil, err
		}
		return &Waypoint{Translation: *tt, Rotation: rotationFromJSON(ej)}, nil
	case "":
		return nil, errors.New("missing required field \"type\"")
	default:
		return nil, errors.Errorf("unknown type %q", ej.Type)
	}
}

func translationFromJSON(ej elementJSON) (*TranslationTarget, error) {
	if ej.XMeters == nil {
		return nil, errors.Errorf("%s missing required field \"x_meters\"", ej.Type)
	}
	if ej.YMeters == nil {
		return nil, errors.Errorf("%s missing required field \"y_meters\"", ej.Type)
	}
	return &TranslationTarget{
		X:                               *ej.XMeters,
		Y:                               *ej.YMeters,
		FinalVelocityMetersPerSec:       ej.FinalVelocityMetersPerSec,
		MaxVelocityMetersPerSec:         ej.MaxVelocityMetersPerSec,
		MaxAccelerationMetersPerSec2:    ej.MaxAccelerationMetersPerSec2,
		IntermediateHandoffRadiusMeters: ej.IntermediateHandoffRadiusMeters,
	}, nil
}

func rotationFromJSON(ej elementJSON) RotationTarget {
	rt := RotationTarget{
		MaxVelocityDegPerSec:      ej.MaxVelocityDegPerSec,
		MaxAccelerationDegPerSec2: ej.MaxAccelerationDegPerSec2,
	}
	if ej.RotationDegrees != nil {
		rt.RotationRadians = utils.DegToRad(*ej.RotationDegrees)
	}
	return rt
}

// Load reads a path file.
func Load(file string) (*Path, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading path %q", file)
	}
	p := &Path{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errors.Wrapf(err, "path %q", file)
	}
	return p, nil
}

// Save writes p to file atomically.
func (p *Path) Save(file string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(file, append(data, '\n'), 0o644)
}
