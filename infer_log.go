package swiftcsv

import "github.com/sirupsen/logrus"

// InferenceLogger receives a debug-level trace of each dialect candidate
// the Inferrer scored during construction. It is off the hot path:
// candidates are only evaluated once, at reader construction time, never
// per-row. A nil InferenceLogger is silent, which is the default — a
// library must never log on a caller's behalf unless asked to.
type InferenceLogger interface {
	LogCandidate(dialect Dialect, score float64)
}

// logCandidate reports a scored candidate to inf.logger, a no-op when no
// logger is configured.
func (inf *Inferrer) logCandidate(dialect Dialect, score float64) {
	if inf.logger == nil {
		return
	}
	inf.logger.LogCandidate(dialect, score)
}

// LogrusInferenceLogger adapts a *logrus.Logger to InferenceLogger,
// emitting one debug-level entry per scored candidate.
type LogrusInferenceLogger struct {
	Log *logrus.Logger
}

// NewLogrusInferenceLogger returns an InferenceLogger backed by log. A nil
// log falls back to logrus.StandardLogger().
func NewLogrusInferenceLogger(log *logrus.Logger) *LogrusInferenceLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusInferenceLogger{Log: log}
}

// LogCandidate implements InferenceLogger.
func (l *LogrusInferenceLogger) LogCandidate(dialect Dialect, score float64) {
	l.Log.WithFields(logrus.Fields{
		"field":  dialect.Field.String(),
		"row":    dialect.Row.String(),
		"escape": dialect.Escape.Enabled(),
		"score":  score,
	}).Debug("swiftcsv: scored inference candidate")
}
