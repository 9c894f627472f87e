package utils

import (
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
)

// UncheckedError is used in places where we really do not care about an error but we
// want to at least report it. Never use this for closing writers.
func UncheckedError(err error) {
	if err != nil {
		logging.Global().Debugw("unchecked error", "error", err)
	}
}

// UncheckedErrorFunc is used in places where we really do not care about an error but we
// want to at least report it. Never use this for closing writers.
func UncheckedErrorFunc(f func() error) {
	UncheckedError(f())
}
