package log

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

type Level int

const (
	TRACE = Level(iota)
	DEBUG
	INFO
	WARN
	ERROR
	FATAL

	QUIET
)

var levelNames = [...]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
	QUIET: "QUIET",
}

const (
	colorReset = "\033[0m"

	colorTrace = "\033[38m"
	colorDebug = "\033[37m"
	colorInfo  = "\033[36m"
	colorWarn  = "\033[33m"
	colorError = "\033[31m"
	colorFatal = "\033[41m"
)

func (l Level) String() string {
	if l < TRACE || l > QUIET {
		return levelNames[QUIET]
	}

	return levelNames[l]
}

func (l Level) Color() string {
	switch l {
	case TRACE:
		return colorTrace
	case DEBUG:
		return colorDebug
	case INFO:
		return colorInfo
	case WARN:
		return colorWarn
	case ERROR:
		return colorError
	case FATAL:
		return colorFatal
	default:
		return colorReset
	}
}

// zap has no trace level, TRACE goes to debug
func (l Level) zap() zapcore.Level {
	switch l {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.DPanicLevel
	}
}

// FromString parses level names case-insensitively. Unknown names give QUIET.
func FromString(l string) Level {
	l = strings.ToUpper(strings.TrimSpace(l))
	for lvl, name := range levelNames {
		if name == l {
			return Level(lvl)
		}
	}

	return QUIET
}
