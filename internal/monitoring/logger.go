// Package monitoring provides the process-wide diagnostic logger.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf logs only when debug mode has been enabled. It shares the sink
// configured by SetLogger.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		Debugf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// EnableDebug routes Debugf to the current Logf sink.
func EnableDebug() {
	Debugf = func(format string, v ...interface{}) {
		Logf("[debug] "+format, v...)
	}
}
