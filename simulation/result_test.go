package simulation

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func threeSamples() *Result {
	res := &Result{}
	res.record(0, Pose{X: 0, Y: 0, Heading: 3}, ChassisSpeeds{})
	res.record(1, Pose{X: 2, Y: 0, Heading: -3}, ChassisSpeeds{VX: 2})
	res.record(2, Pose{X: 2, Y: 4, Heading: -3}, ChassisSpeeds{VY: 4})
	return res
}

func TestResultRecord(t *testing.T) {
	res := threeSamples()
	test.That(t, res.Len(), test.ShouldEqual, 3)
	test.That(t, res.TotalTime, test.ShouldEqual, 2.)

	// a sample at the same time replaces the last one
	res.record(2, Pose{X: 5}, ChassisSpeeds{})
	test.That(t, res.Len(), test.ShouldEqual, 3)
	test.That(t, res.Poses[2].X, test.ShouldEqual, 5.)
	test.That(t, res.Trail[2].X, test.ShouldEqual, 5.)
}

func TestResultIndexAt(t *testing.T) {
	res := threeSamples()
	test.That(t, res.IndexAt(-1), test.ShouldEqual, 0)
	test.That(t, res.IndexAt(0), test.ShouldEqual, 0)
	test.That(t, res.IndexAt(0.99), test.ShouldEqual, 0)
	test.That(t, res.IndexAt(1), test.ShouldEqual, 1)
	test.That(t, res.IndexAt(1.5), test.ShouldEqual, 1)
	test.That(t, res.IndexAt(2), test.ShouldEqual, 2)
	test.That(t, res.IndexAt(10), test.ShouldEqual, 2)

	var empty *Result
	test.That(t, empty.IndexAt(1), test.ShouldEqual, -1)
	test.That(t, empty.Empty(), test.ShouldBeTrue)
}

func TestResultPoseAt(t *testing.T) {
	res := threeSamples()

	pose, ok := res.PoseAt(0.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pose.X, test.ShouldAlmostEqual, 1)
	test.That(t, pose.Y, test.ShouldAlmostEqual, 0)
	// 3 to -3 crosses the seam, so the midpoint is at pi
	test.That(t, math.Abs(pose.Heading), test.ShouldAlmostEqual, math.Pi, 1e-9)

	pose, _ = res.PoseAt(1.25)
	test.That(t, pose.Y, test.ShouldAlmostEqual, 1)

	pose, _ = res.PoseAt(-4)
	test.That(t, pose, test.ShouldResemble, res.Poses[0])
	pose, _ = res.PoseAt(99)
	test.That(t, pose, test.ShouldResemble, res.Poses[2])

	_, ok = (&Result{}).PoseAt(0)
	test.That(t, ok, test.ShouldBeFalse)
}
