// Package log is a thin leveled wrapper over logrus. The serialization
// core never logs; this package serves the tooling and the dispatch
// collaborators around it.
package log

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func NewLevel(l string) (Level, error) {
	switch l {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelTrace, errors.Errorf("invalid log level: %s", l)
	}
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		panic("invalid level")
	}
}

var levelMap = map[Level]logrus.Level{
	LevelTrace: logrus.TraceLevel,
	LevelDebug: logrus.DebugLevel,
	LevelInfo:  logrus.InfoLevel,
	LevelWarn:  logrus.WarnLevel,
	LevelError: logrus.ErrorLevel,
	LevelFatal: logrus.FatalLevel,
}

// Logger logs a message plus alternating key/value field pairs.
type Logger interface {
	Trace(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
	Sub(fields ...interface{}) Logger
}

var root = logrus.New()

// SetLevel adjusts the level of every logger created by WithModule.
func SetLevel(level Level) {
	root.SetLevel(levelMap[level])
}

// WithModule returns a logger scoped to the named module.
func WithModule(name string) Logger {
	return &fieldLogger{backend: root.WithField("module", name)}
}

type fieldLogger struct {
	backend logrus.Ext1FieldLogger
}

var _ Logger = (*fieldLogger)(nil)

func (l *fieldLogger) Trace(msg string, fields ...interface{}) {
	l.with(fields).Trace(msg)
}

func (l *fieldLogger) Debug(msg string, fields ...interface{}) {
	l.with(fields).Debug(msg)
}

func (l *fieldLogger) Info(msg string, fields ...interface{}) {
	l.with(fields).Info(msg)
}

func (l *fieldLogger) Warn(msg string, fields ...interface{}) {
	l.with(fields).Warn(msg)
}

func (l *fieldLogger) Error(msg string, fields ...interface{}) {
	l.with(fields).Error(msg)
}

func (l *fieldLogger) Fatal(msg string, fields ...interface{}) {
	l.with(fields).Fatal(msg)
}

func (l *fieldLogger) Sub(fields ...interface{}) Logger {
	return &fieldLogger{backend: l.with(fields)}
}

func (l *fieldLogger) with(fields []interface{}) logrus.Ext1FieldLogger {
	if len(fields) == 0 {
		return l.backend
	}
	if len(fields)%2 != 0 {
		panic("fields must be key/value pairs")
	}
	out := make(logrus.Fields, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			panic("field keys must be strings")
		}
		out[key] = fields[i+1]
	}
	return l.backend.WithFields(out)
}
