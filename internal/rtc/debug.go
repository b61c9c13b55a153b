// Package rtc bridges WebRTC data channels into the control dispatcher.
package rtc

import (
	"log"
	"sync/atomic"
)

// debugLogs gates the chatty per-message logging.
var debugLogs atomic.Bool

// SetDebugLogging toggles verbose logging for data channel traffic and
// peer state changes.
func SetDebugLogging(on bool) {
	debugLogs.Store(on)
}

// debugf logs only when debug logging is enabled.
func debugf(format string, args ...any) {
	if !debugLogs.Load() {
		return
	}
	log.Printf(format, args...)
}
