package simulation

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// ChassisSpeeds is a field-relative velocity: VX and VY in m/s, Omega in rad/s.
type ChassisSpeeds struct {
	VX    float64
	VY    float64
	Omega float64
}

// Linear returns the translational velocity as a vector.
func (s ChassisSpeeds) Linear() r2.Point {
	return r2.Point{X: s.VX, Y: s.VY}
}

// Speed returns the magnitude of the translational velocity.
func (s ChassisSpeeds) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

func speedsFrom(linear r2.Point, omega float64) ChassisSpeeds {
	return ChassisSpeeds{VX: linear.X, VY: linear.Y, Omega: omega}
}

// limitAcceleration moves last toward desired by at most maxAccel*dt of translational
// change, taken along the direction of the difference, and maxAlpha*dt of angular change.
func limitAcceleration(desired, last ChassisSpeeds, dt, maxAccel, maxAlpha float64) ChassisSpeeds {
	if dt <= 0 {
		return last
	}
	dv := desired.Linear().Sub(last.Linear())
	accel := utils.Clamp(dv.Norm()/dt, 0, math.Max(maxAccel, 0))
	linear := last.Linear().Add(dv.Normalize().Mul(accel * dt))

	alpha := utils.ClampMagnitude((desired.Omega-last.Omega)/dt, math.Max(maxAlpha, 0))
	return speedsFrom(linear, last.Omega+alpha*dt)
}

// clampSpeeds scales the translational velocity down to maxSpeed and limits |Omega|
// to maxOmega.
func clampSpeeds(s ChassisSpeeds, maxSpeed, maxOmega float64) ChassisSpeeds {
	linear := s.Linear()
	if speed := linear.Norm(); speed > maxSpeed && speed > 0 {
		linear = linear.Mul(maxSpeed / speed)
	}
	return speedsFrom(linear, utils.ClampMagnitude(s.Omega, maxOmega))
}
