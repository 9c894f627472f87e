// Package config defines the global motion constraints and project settings used when
// simulating a path, along with the precedence rules that combine them with per-element
// overrides.
package config

import (
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// Fallback values used when neither an element nor the global configuration sets a
// positive value.
const (
	DefaultInitialVelocityMetersPerSec     = 0.0
	DefaultFinalVelocityMetersPerSec       = 0.0
	DefaultMaxVelocityMetersPerSec         = 3.0
	DefaultMaxAccelerationMetersPerSec2    = 2.5
	DefaultMaxVelocityDegPerSec            = 180.0
	DefaultMaxAccelerationDegPerSec2       = 360.0
	DefaultIntermediateHandoffRadiusMeters = 0.05
	DefaultEndTranslationToleranceMeters   = 0.05

	DefaultRobotLengthMeters = 0.60
	DefaultRobotWidthMeters  = 0.60
)

// Constraints is the flat set of global motion limits. A value that is not positive
// is treated as unset.
type Constraints struct {
	InitialVelocityMetersPerSec     float64 `json:"initial_velocity_meters_per_sec,omitempty"`
	FinalVelocityMetersPerSec       float64 `json:"final_velocity_meters_per_sec,omitempty"`
	MaxVelocityMetersPerSec         float64 `json:"max_velocity_meters_per_sec,omitempty"`
	MaxAccelerationMetersPerSec2    float64 `json:"max_acceleration_meters_per_sec2,omitempty"`
	MaxVelocityDegPerSec            float64 `json:"max_velocity_deg_per_sec,omitempty"`
	MaxAccelerationDegPerSec2       float64 `json:"max_acceleration_deg_per_sec2,omitempty"`
	IntermediateHandoffRadiusMeters float64 `json:"intermediate_handoff_radius_meters,omitempty"`
	EndTranslationToleranceMeters   float64 `json:"end_translation_tolerance_meters,omitempty"`
}

// ResolvedConstraints holds constraints with fallbacks applied. Angular limits are in radians.
type ResolvedConstraints struct {
	InitialVelocity         float64 // m/s
	FinalVelocity           float64 // m/s
	MaxVelocity             float64 // m/s
	MaxAcceleration         float64 // m/s^2
	MaxAngularVelocity      float64 // rad/s
	MaxAngularAcceleration  float64 // rad/s^2
	HandoffRadius           float64 // m
	EndTranslationTolerance float64 // m
}

// Resolve returns the first of override and global that is positive, otherwise fallback.
func Resolve(override, global, fallback float64) float64 {
	if override > 0 {
		return override
	}
	if global > 0 {
		return global
	}
	return fallback
}

// Merge returns c with every positive value of over layered on top.
func (c Constraints) Merge(over Constraints) Constraints {
	return Constraints{
		InitialVelocityMetersPerSec:     Resolve(over.InitialVelocityMetersPerSec, c.InitialVelocityMetersPerSec, 0),
		FinalVelocityMetersPerSec:       Resolve(over.FinalVelocityMetersPerSec, c.FinalVelocityMetersPerSec, 0),
		MaxVelocityMetersPerSec:         Resolve(over.MaxVelocityMetersPerSec, c.MaxVelocityMetersPerSec, 0),
		MaxAccelerationMetersPerSec2:    Resolve(over.MaxAccelerationMetersPerSec2, c.MaxAccelerationMetersPerSec2, 0),
		MaxVelocityDegPerSec:            Resolve(over.MaxVelocityDegPerSec, c.MaxVelocityDegPerSec, 0),
		MaxAccelerationDegPerSec2:       Resolve(over.MaxAccelerationDegPerSec2, c.MaxAccelerationDegPerSec2, 0),
		IntermediateHandoffRadiusMeters: Resolve(over.IntermediateHandoffRadiusMeters, c.IntermediateHandoffRadiusMeters, 0),
		EndTranslationToleranceMeters:   Resolve(over.EndTranslationToleranceMeters, c.EndTranslationToleranceMeters, 0),
	}
}

// Resolve applies the hard-coded fallbacks to every unset value.
func (c Constraints) Resolve() ResolvedConstraints {
	return ResolvedConstraints{
		InitialVelocity: Resolve(0, c.InitialVelocityMetersPerSec, DefaultInitialVelocityMetersPerSec),
		FinalVelocity:   Resolve(0, c.FinalVelocityMetersPerSec, DefaultFinalVelocityMetersPerSec),
		MaxVelocity:     Resolve(0, c.MaxVelocityMetersPerSec, DefaultMaxVelocityMetersPerSec),
		MaxAcceleration: Resolve(0, c.MaxAccelerationMetersPerSec2, DefaultMaxAccelerationMetersPerSec2),
		MaxAngularVelocity: utils.DegToRad(
			Resolve(0, c.MaxVelocityDegPerSec, DefaultMaxVelocityDegPerSec)),
		MaxAngularAcceleration: utils.DegToRad(
			Resolve(0, c.MaxAccelerationDegPerSec2, DefaultMaxAccelerationDegPerSec2)),
		HandoffRadius:           Resolve(0, c.IntermediateHandoffRadiusMeters, DefaultIntermediateHandoffRadiusMeters),
		EndTranslationTolerance: Resolve(0, c.EndTranslationToleranceMeters, DefaultEndTranslationToleranceMeters),
	}
}
