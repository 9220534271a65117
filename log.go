package pfp

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// loggerPtr stores the active logger. By default pfp logs nothing.
var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func newNopLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// SetLogger configures the logger used by pfp. Pass nil to restore the
// silent default.
//
// Levels used:
//   - Debug: asset loading, per-frame render timings in debug mode
//   - Info: uploads accepted, exports written
//   - Warn: uploads that failed to decode
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l.WithPrefix("pfp"))
}

func logger() *log.Logger {
	return loggerPtr.Load()
}
