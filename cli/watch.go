package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/report"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

var guardColor = color.New(color.FgYellow)

// WatchAction is the corresponding Action for 'watch'. It prints a one line summary
// each time the path file settles after a change.
func WatchAction(c *cli.Context) error {
	logger := logging.Global()
	defer utils.UncheckedErrorFunc(logger.Sync)

	file, err := pathArg(c)
	if err != nil {
		return err
	}
	file = filepath.Clean(file)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting file watcher")
	}
	defer utils.UncheckedErrorFunc(watcher.Close)
	// saves commonly replace the file, so watch its directory rather than the file
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return errors.Wrapf(err, "watching %q", filepath.Dir(file))
	}

	rebuilder := simulation.NewRebuilder(logger.Sublogger("rebuilder"), c.Duration(watchFlagDelay))
	defer rebuilder.Close()

	request := func() {
		p, err := pathmodel.Load(file)
		if err != nil {
			logger.Warnw("cannot load path, keeping the last result", "error", err)
			return
		}
		rebuilder.Request(p, cfg.Constraints)
	}
	request()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	remaining := c.Int(watchFlagCount)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != file || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debugw("path changed", "op", event.Op.String())
			request()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		case res, ok := <-rebuilder.Results():
			if !ok {
				return nil
			}
			summary := report.Summarize(res)
			if summary.StopReason == simulation.StopGuard {
				// the robot never settled; make it stand out
				guardColor.Fprintln(c.App.Writer, summary)
			} else {
				fmt.Fprintln(c.App.Writer, summary)
			}
			if remaining > 0 {
				remaining--
				if remaining == 0 {
					return nil
				}
			}
		}
	}
}
