package transport

import (
	"github.com/rs/zerolog"

	"github.com/ytget/ytm-offline/internal/logging"
)

// retryLogger implements the retryablehttp.LeveledLogger interface on top
// of the application logger
type retryLogger struct {
	log *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Error(), msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// request lines are noisy at info, keep them at debug
	l.emit(l.log.Debug(), msg, keysAndValues)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Debug(), msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Warn(), msg, keysAndValues)
}

func (l *retryLogger) emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	ev.Msg(msg)
}
