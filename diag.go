package serline

import "go.uber.org/zap"

// logger receives diagnostics for unexpected host errors. Expected outcomes
// (device absent, access denied, not a serial device) are never logged; they
// surface only through the operation's return value.
var logger = zap.NewNop()

// SetLogger installs a logger for unexpected host-error diagnostics. Passing
// nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// diagErr reports an unexpected error from the named host primitive. The
// calling operation still returns its normal failure value afterwards.
func diagErr(primitive string, err error) {
	logger.Error("serial host call failed",
		zap.String("call", primitive),
		zap.Error(err),
	)
}
