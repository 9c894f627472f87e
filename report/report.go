// Package report summarizes simulation results for the command line.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// Summary is the headline numbers of one simulation.
type Summary struct {
	TotalTime         float64 // s
	Samples           int
	Distance          float64 // m travelled along the trail
	MaxSpeed          float64 // m/s
	MeanSpeed         float64 // m/s
	P95Speed          float64 // m/s
	MaxOmegaDegPerSec float64
	Final             simulation.Pose
	StopReason        simulation.StopReason
}

// Summarize computes the summary of res. An empty result gives a zero Summary.
func Summarize(res *simulation.Result) Summary {
	if res.Empty() {
		return Summary{}
	}
	final, _ := res.Final()
	s := Summary{
		TotalTime:  res.TotalTime,
		Samples:    res.Len(),
		Final:      final,
		StopReason: res.StopReason,
	}

	steps := make([]float64, 0, len(res.Trail))
	for i := 1; i < len(res.Trail); i++ {
		steps = append(steps, res.Trail[i].Sub(res.Trail[i-1]).Norm())
	}
	s.Distance = floats.Sum(steps)

	speeds := Speeds(res)
	// stats only fails on empty input, which was ruled out above
	s.MaxSpeed, _ = stats.Max(speeds)
	s.MeanSpeed, _ = stats.Mean(speeds)
	s.P95Speed, _ = stats.Percentile(speeds, 95)

	omegas := lo.Map(res.Speeds, func(c simulation.ChassisSpeeds, _ int) float64 { return math.Abs(c.Omega) })
	s.MaxOmegaDegPerSec = utils.RadToDeg(floats.Max(omegas))
	return s
}

// Speeds returns the translational speed of every sample.
func Speeds(res *simulation.Result) []float64 {
	return lo.Map(res.Speeds, func(c simulation.ChassisSpeeds, _ int) float64 { return c.Speed() })
}

// Table renders the summary as a two column table.
func (s Summary) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total time", fmt.Sprintf("%.2f s", s.TotalTime)},
		{"Samples", s.Samples},
		{"Distance", fmt.Sprintf("%.3f m", s.Distance)},
		{"Max speed", fmt.Sprintf("%.3f m/s", s.MaxSpeed)},
		{"Mean speed", fmt.Sprintf("%.3f m/s", s.MeanSpeed)},
		{"P95 speed", fmt.Sprintf("%.3f m/s", s.P95Speed)},
		{"Max angular speed", fmt.Sprintf("%.1f deg/s", s.MaxOmegaDegPerSec)},
		{"Final pose", fmt.Sprintf("X:%.3f, Y:%.3f, Heading:%.1f", s.Final.X, s.Final.Y, utils.RadToDeg(s.Final.Heading))},
		{"Stopped by", string(s.StopReason)},
	})
	return t.Render()
}

// String is a one line form of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("%.2fs, %d samples, %.3fm, max %.2fm/s, final (%.3f, %.3f) %.1fdeg [%s]",
		s.TotalTime, s.Samples, s.Distance, s.MaxSpeed,
		s.Final.X, s.Final.Y, utils.RadToDeg(s.Final.Heading), s.StopReason)
}

// CSVHeader names the columns written by WriteCSV.
var CSVHeader = []string{"t", "x", "y", "heading_deg", "vx", "vy", "omega_deg"}

// WriteCSV writes one row per sample of res.
func WriteCSV(w io.Writer, res *simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i := 0; i < res.Len(); i++ {
		pose, speeds := res.Poses[i], res.Speeds[i]
		row := []string{
			formatFloat(res.Times[i]),
			formatFloat(pose.X),
			formatFloat(pose.Y),
			formatFloat(utils.RadToDeg(pose.Heading)),
			formatFloat(speeds.VX),
			formatFloat(speeds.VY),
			formatFloat(utils.RadToDeg(speeds.Omega)),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing sample %d", i)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteSpeedHistogram draws a text histogram of sample speeds with the given number of bins.
func WriteSpeedHistogram(w io.Writer, res *simulation.Result, bins int) error {
	if res.Empty() {
		return errors.New("no samples to plot")
	}
	if bins < 1 {
		bins = 1
	}
	return histogram.Fprint(w, histogram.Hist(bins, Speeds(res)), histogram.Linear(40))
}
