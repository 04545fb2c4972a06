package usecase

import "go.uber.org/zap"

// log backs the pure scoring and normalization functions. Defaults to nop so
// library callers and tests see no output unless they opt in.
var log = zap.NewNop()

// SetLogger directs core scoring and normalization logs to the given logger.
// Passing nil restores the nop default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
