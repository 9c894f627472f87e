package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestResolvePrecedence(t *testing.T) {
	test.That(t, Resolve(1, 2, 3), test.ShouldEqual, 1.)
	test.That(t, Resolve(0, 2, 3), test.ShouldEqual, 2.)
	test.That(t, Resolve(-1, 0, 3), test.ShouldEqual, 3.)
	test.That(t, Resolve(0, -2, 3), test.ShouldEqual, 3.)
}

func TestConstraintsResolveFallbacks(t *testing.T) {
	r := Constraints{}.Resolve()
	test.That(t, r.InitialVelocity, test.ShouldEqual, 0.)
	test.That(t, r.FinalVelocity, test.ShouldEqual, 0.)
	test.That(t, r.MaxVelocity, test.ShouldEqual, DefaultMaxVelocityMetersPerSec)
	test.That(t, r.MaxAcceleration, test.ShouldEqual, DefaultMaxAccelerationMetersPerSec2)
	test.That(t, r.MaxAngularVelocity, test.ShouldAlmostEqual, math.Pi)
	test.That(t, r.MaxAngularAcceleration, test.ShouldAlmostEqual, 2*math.Pi)
	test.That(t, r.HandoffRadius, test.ShouldEqual, DefaultIntermediateHandoffRadiusMeters)
	test.That(t, r.EndTranslationTolerance, test.ShouldEqual, DefaultEndTranslationToleranceMeters)

	r = Constraints{MaxVelocityMetersPerSec: 2, MaxVelocityDegPerSec: 90}.Resolve()
	test.That(t, r.MaxVelocity, test.ShouldEqual, 2.)
	test.That(t, r.MaxAngularVelocity, test.ShouldAlmostEqual, math.Pi/2)
}

func TestConstraintsMerge(t *testing.T) {
	base := Constraints{MaxVelocityMetersPerSec: 3, MaxAccelerationMetersPerSec2: 2}
	merged := base.Merge(Constraints{MaxVelocityMetersPerSec: 1.5, MaxAccelerationMetersPerSec2: -1})
	test.That(t, merged.MaxVelocityMetersPerSec, test.ShouldEqual, 1.5)
	test.That(t, merged.MaxAccelerationMetersPerSec2, test.ShouldEqual, 2.)
	test.That(t, merged.FinalVelocityMetersPerSec, test.ShouldEqual, 0.)
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]interface{}{
		"max_velocity_meters_per_sec":        "2.5",
		"intermediate_handoff_radius_meters": 0.4,
		"robot_width_meters":                 0.7,
		"end_rotation_tolerance_deg":         2.0,
		"robot_length_meters":                0,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.MaxVelocityMetersPerSec, test.ShouldEqual, 2.5)
	test.That(t, cfg.IntermediateHandoffRadiusMeters, test.ShouldEqual, 0.4)
	test.That(t, cfg.RobotWidthMeters, test.ShouldEqual, 0.7)
	test.That(t, cfg.RobotLengthMeters, test.ShouldEqual, DefaultRobotLengthMeters)
	test.That(t, cfg.Unused, test.ShouldResemble, []string{"end_rotation_tolerance_deg"})

	_, err = FromMap(map[string]interface{}{"max_velocity_meters_per_sec": map[string]interface{}{"a": 1}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")

	cfg, err := Read(file)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())

	cfg.MaxAccelerationMetersPerSec2 = 1.25
	cfg.MaxVelocityDegPerSec = 270
	test.That(t, cfg.Write(file), test.ShouldBeNil)

	back, err := Read(file)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.MaxAccelerationMetersPerSec2, test.ShouldEqual, 1.25)
	test.That(t, back.MaxVelocityDegPerSec, test.ShouldEqual, 270.)
	test.That(t, back.Unused, test.ShouldBeEmpty)

	test.That(t, os.WriteFile(file, []byte("[1, 2]"), 0o644), test.ShouldBeNil)
	_, err = Read(file)
	test.That(t, err, test.ShouldNotBeNil)
}
