package logging

import (
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Logger is the logging interface handed to every component.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<parent>.<subname>" that shares the parent's level.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	AsZap() *zap.SugaredLogger
	Sync() error
}

type impl struct {
	name    string
	level   zap.AtomicLevel
	sugared *zap.SugaredLogger
}

func (imp *impl) Debug(args ...interface{}) { imp.sugared.Debug(args...) }
func (imp *impl) Debugf(tmpl string, args ...interface{}) { imp.sugared.Debugf(tmpl, args...) }
func (imp *impl) Debugw(msg string, kv ...interface{}) { imp.sugared.Debugw(msg, kv...) }
func (imp *impl) Info(args ...interface{}) { imp.sugared.Info(args...) }
func (imp *impl) Infof(tmpl string, args ...interface{}) { imp.sugared.Infof(tmpl, args...) }
func (imp *impl) Infow(msg string, kv ...interface{}) { imp.sugared.Infow(msg, kv...) }
func (imp *impl) Warn(args ...interface{}) { imp.sugared.Warn(args...) }
func (imp *impl) Warnf(tmpl string, args ...interface{}) { imp.sugared.Warnf(tmpl, args...) }
func (imp *impl) Warnw(msg string, kv ...interface{}) { imp.sugared.Warnw(msg, kv...) }
func (imp *impl) Error(args ...interface{}) { imp.sugared.Error(args...) }
func (imp *impl) Errorf(tmpl string, args ...interface{}) { imp.sugared.Errorf(tmpl, args...) }
func (imp *impl) Errorw(msg string, kv ...interface{}) { imp.sugared.Errorw(msg, kv...) }

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return &impl{
		name:    newName,
		level:   imp.level,
		sugared: imp.sugared.Named(subname),
	}
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	return levelFromZap(imp.level.Level())
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return imp.sugared
}

// Sync flushes buffered output. Errors from syncing terminals and pipes, which
// never support fsync, are dropped.
func (imp *impl) Sync() error {
	var kept error
	for _, err := range multierr.Errors(imp.sugared.Sync()) {
		if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
			continue
		}
		kept = multierr.Append(kept, err)
	}
	return kept
}
