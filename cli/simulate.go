package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/plotting"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/report"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// newLogger builds the logger for a run. --debug wins over --log-level.
func newLogger(c *cli.Context) (logging.Logger, error) {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger("pathsim"), nil
	}
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger("pathsim")
	logger.SetLevel(level)
	return logger, nil
}

// pathArg returns the single path file argument.
func pathArg(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", errors.Errorf("expected exactly one path file argument, got %d", c.Args().Len())
	}
	return c.Args().First(), nil
}

// loadConfig reads the --config file, or returns the defaults when none was given.
func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	file := c.String(generalFlagConfig)
	if file == "" {
		return config.Default(), nil
	}
	cfg, err := config.Read(file)
	if err != nil {
		return nil, err
	}
	if len(cfg.Unused) > 0 {
		logger.Warnw("ignoring unknown config keys", "file", file, "keys", strings.Join(cfg.Unused, ", "))
	}
	return cfg, nil
}

type loaded struct {
	logger logging.Logger
	file   string
	path   *pathmodel.Path
	cfg    *config.Config
}

func load(c *cli.Context) (*loaded, error) {
	logger := logging.Global()
	file, err := pathArg(c)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return nil, err
	}
	p, err := pathmodel.Load(file)
	if err != nil {
		return nil, err
	}
	return &loaded{logger: logger, file: file, path: p, cfg: cfg}, nil
}

// SimulateAction is the corresponding Action for 'simulate'.
func SimulateAction(c *cli.Context) error {
	l, err := load(c)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(l.logger.Sync)

	res := simulation.NewSimulator(l.logger.Sublogger("simulation")).
		Simulate(l.path, l.cfg.Constraints, c.Float64(simulateFlagDT))
	fmt.Fprintln(c.App.Writer, report.Summarize(res).Table())

	if bins := c.Int(simulateFlagHistogram); bins > 0 {
		if err := report.WriteSpeedHistogram(c.App.Writer, res, bins); err != nil {
			return err
		}
	}

	if out := c.String(simulateFlagCSV); out != "" {
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, res); err != nil {
			return err
		}
		if err := utils.WriteFileAtomic(out, buf.Bytes(), 0o644); err != nil {
			return errors.Wrapf(err, "writing samples to %q", out)
		}
		l.logger.Infow("wrote samples", "file", out, "rows", res.Len())
	}
	return nil
}

// PlotAction is the corresponding Action for 'plot'.
func PlotAction(c *cli.Context) error {
	l, err := load(c)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(l.logger.Sync)

	res := simulation.NewSimulator(l.logger.Sublogger("simulation")).
		Simulate(l.path, l.cfg.Constraints, simulation.DefaultTimestep)
	plt, err := plotting.Trail(res, l.cfg, plotting.Options{
		Title:          filepath.Base(l.file),
		Anchors:        simulation.BuildSegments(l.path).Anchors,
		FootprintEvery: c.Int(plotFlagFootprintEvery),
	})
	if err != nil {
		return err
	}
	out := c.String(plotFlagOut)
	if err := plotting.Save(plt, out); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%s)\n", out, report.Summarize(res))
	return nil
}
