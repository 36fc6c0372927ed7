// Package monitoring holds the diagnostic logger shared by the loader,
// renderers and viewer.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf.
// Tests swap it out with SetLogger to capture or silence output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf and returns the previous logger so callers can
// restore it. A nil f installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) (previous func(format string, v ...interface{})) {
	previous = Logf
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return previous
	}
	Logf = f
	return previous
}
