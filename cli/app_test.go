package cli

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
)

func writeProject(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	pathFile := filepath.Join(dir, "path.json")
	p := pathmodel.New(
		&pathmodel.TranslationTarget{X: 0, Y: 0},
		&pathmodel.RotationTarget{RotationRadians: 1, TRatio: 0.5},
		&pathmodel.TranslationTarget{X: 3, Y: 0},
	)
	test.That(t, p.Save(pathFile), test.ShouldBeNil)

	cfgFile := filepath.Join(dir, "config.json")
	cfg := config.Default()
	cfg.MaxVelocityMetersPerSec = 2
	test.That(t, cfg.Write(cfgFile), test.ShouldBeNil)
	return pathFile, cfgFile
}

func TestSimulateCommand(t *testing.T) {
	pathFile, cfgFile := writeProject(t)
	csvFile := filepath.Join(filepath.Dir(pathFile), "samples.csv")

	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{
		"pathsim", "--config", cfgFile, "simulate", "--csv", csvFile, "--histogram", "4", pathFile,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "Total time")
	test.That(t, out.String(), test.ShouldContainSubstring, "2.000 m/s")

	data, err := os.ReadFile(csvFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.HasPrefix(string(data), "t,x,y,heading_deg,vx,vy,omega_deg\n"), test.ShouldBeTrue)
}

func TestSimulateCommandErrors(t *testing.T) {
	pathFile, _ := writeProject(t)
	var out, errOut bytes.Buffer

	err := NewApp(&out, &errOut).Run([]string{"pathsim", "simulate"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exactly one path file")

	err = NewApp(&out, &errOut).Run([]string{"pathsim", "simulate", pathFile + ".missing"})
	test.That(t, err, test.ShouldNotBeNil)

	bad := filepath.Join(t.TempDir(), "bad.json")
	test.That(t, os.WriteFile(bad, []byte(`{"elements": [{"type": "spline"}]}`), 0o600), test.ShouldBeNil)
	err = NewApp(&out, &errOut).Run([]string{"pathsim", "simulate", bad})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown type")
}

func TestLogLevelFlag(t *testing.T) {
	pathFile, _ := writeProject(t)
	var out, errOut bytes.Buffer

	err := NewApp(&out, &errOut).Run([]string{"pathsim", "--log-level", "loud", "simulate", pathFile})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")

	err = NewApp(&out, &errOut).Run([]string{"pathsim", "--log-level", "warn", "simulate", pathFile})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.WARN)

	err = NewApp(&out, &errOut).Run([]string{"pathsim", "--log-level", "warn", "--debug", "simulate", pathFile})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.DEBUG)
}

func TestPlotCommand(t *testing.T) {
	pathFile, cfgFile := writeProject(t)
	png := filepath.Join(filepath.Dir(pathFile), "trail.png")

	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{"pathsim", "-c", cfgFile, "plot", "--out", png, pathFile})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "wrote "+png)

	info, err := os.Stat(png)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}

func TestWatchCommand(t *testing.T) {
	pathFile, cfgFile := writeProject(t)

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- NewApp(pw, io.Discard).Run([]string{
			"pathsim", "--config", cfgFile, "watch", "--delay", "10ms", "--count", "2", pathFile,
		})
		pw.Close()
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()
	next := func() string {
		select {
		case line := <-lines:
			return line
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for a watch result")
			return ""
		}
	}

	first := next()
	test.That(t, first, test.ShouldContainSubstring, "samples")

	p, err := pathmodel.Load(pathFile)
	test.That(t, err, test.ShouldBeNil)
	p.Elements[2].(*pathmodel.TranslationTarget).X = 1
	test.That(t, p.Save(pathFile), test.ShouldBeNil)

	second := next()
	test.That(t, second, test.ShouldNotEqual, first)
	test.That(t, <-done, test.ShouldBeNil)
}

func TestSampleProject(t *testing.T) {
	dir := filepath.Join("..", "samples", "skills")
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{
		"pathsim", "--config", filepath.Join(dir, "config.json"), "simulate", filepath.Join(dir, "path.json"),
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "Final pose")
}
