// Package monitoring holds the diagnostic logger shared by the simulation
// binaries and their supporting packages.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger so tests can capture or mute output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// now is replaced in tests.
var now = time.Now

// Timed logs how long the labelled step took when the returned func runs.
//
//	defer monitoring.Timed("convergence")()
func Timed(label string) func() {
	start := now()
	return func() {
		Logf("%s took %s", label, now().Sub(start).Round(time.Microsecond))
	}
}
