package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/plotting"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
)

const (
	// Flags.
	generalFlagConfig   = "config"
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"

	simulateFlagDT        = "dt"
	simulateFlagCSV       = "csv"
	simulateFlagHistogram = "histogram"

	plotFlagOut            = "out"
	plotFlagFootprintEvery = "footprint-every"

	watchFlagDelay = "delay"
	watchFlagCount = "count"
)

// NewApp returns a new app with the path simulator commands, Writer set to out, and
// ErrWriter set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "pathsim",
		Usage:           "simulate robot paths the way the editor previews them",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load project configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Value: "info",
				Usage: "minimum level to log: debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "simulate",
				Usage:     "simulate a path and print a summary",
				ArgsUsage: "<path.json>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  simulateFlagDT,
						Value: simulation.DefaultTimestep,
						Usage: "integration step in seconds",
					},
					&cli.StringFlag{
						Name:  simulateFlagCSV,
						Usage: "also write every sample to `FILE`",
					},
					&cli.IntFlag{
						Name:  simulateFlagHistogram,
						Usage: "print a speed histogram with this many bins",
					},
				},
				Action: SimulateAction,
			},
			{
				Name:      "plot",
				Usage:     "simulate a path and draw its trail",
				ArgsUsage: "<path.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  plotFlagOut,
						Value: "trail.png",
						Usage: "write the plot to `FILE`; the extension picks the format",
					},
					&cli.IntFlag{
						Name:  plotFlagFootprintEvery,
						Value: plotting.DefaultFootprintEvery,
						Usage: "samples between robot outlines, negative for none",
					},
				},
				Action: PlotAction,
			},
			{
				Name:      "watch",
				Usage:     "re-simulate a path every time its file changes",
				ArgsUsage: "<path.json>",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  watchFlagDelay,
						Value: simulation.DefaultRebuildDelay,
						Usage: "quiet period after a change before simulating",
					},
					&cli.IntFlag{
						Name:  watchFlagCount,
						Usage: "exit after this many results, zero to run until interrupted",
					},
				},
				Action: WatchAction,
			},
		},
	}
}
