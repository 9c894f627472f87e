package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
)

func straightResult() *simulation.Result {
	return simulation.Simulate(pathmodel.New(
		&pathmodel.TranslationTarget{X: 0, Y: 0},
		&pathmodel.TranslationTarget{X: 4, Y: 0},
	), config.Constraints{MaxVelocityMetersPerSec: 2}, 0.02)
}

func TestSummarize(t *testing.T) {
	res := straightResult()
	s := Summarize(res)
	test.That(t, s.Samples, test.ShouldEqual, res.Len())
	test.That(t, s.TotalTime, test.ShouldEqual, res.TotalTime)
	test.That(t, s.Distance, test.ShouldAlmostEqual, s.Final.X, 1e-9)
	test.That(t, s.Distance, test.ShouldAlmostEqual, 4, 0.1)
	test.That(t, s.MaxSpeed, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, s.MeanSpeed, test.ShouldBeGreaterThan, 0.)
	test.That(t, s.MeanSpeed, test.ShouldBeLessThan, s.MaxSpeed)
	test.That(t, s.P95Speed, test.ShouldBeLessThanOrEqualTo, s.MaxSpeed)
	test.That(t, s.MaxOmegaDegPerSec, test.ShouldEqual, 0.)

	test.That(t, Summarize(&simulation.Result{}), test.ShouldResemble, Summary{})
	test.That(t, Summarize(nil), test.ShouldResemble, Summary{})
}

func TestSummaryRendering(t *testing.T) {
	s := Summarize(straightResult())
	out := s.Table()
	for _, want := range []string{"Total time", "Max speed", "2.000 m/s", "Stopped by"} {
		test.That(t, out, test.ShouldContainSubstring, want)
	}
	test.That(t, s.String(), test.ShouldContainSubstring, "max 2.00m/s")
}

func TestWriteCSV(t *testing.T) {
	res := straightResult()
	var buf bytes.Buffer
	test.That(t, WriteCSV(&buf, res), test.ShouldBeNil)

	rows, err := csv.NewReader(&buf).ReadAll()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, res.Len()+1)
	test.That(t, rows[0], test.ShouldResemble, CSVHeader)
	test.That(t, rows[1], test.ShouldResemble, []string{
		"0.000000", "0.000000", "0.000000", "0.000000", "0.000000", "0.000000", "0.000000",
	})
	test.That(t, rows[2][0], test.ShouldEqual, "0.020000")
}

func TestWriteSpeedHistogram(t *testing.T) {
	var buf bytes.Buffer
	test.That(t, WriteSpeedHistogram(&buf, straightResult(), 5), test.ShouldBeNil)
	test.That(t, strings.Count(strings.TrimSpace(buf.String()), "\n"), test.ShouldBeGreaterThanOrEqualTo, 4)

	err := WriteSpeedHistogram(&buf, &simulation.Result{}, 5)
	test.That(t, err, test.ShouldNotBeNil)
}
