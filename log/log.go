package log

import (
	"io/ioutil"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Logger is the leveled, structured logger handed around the command line
// front-end. The library packages stay log-free.
type Logger interface {
	log.FieldLogger
	Reopen() error
	GetLogDest() string
	SetLevel(level string)
	GetLevel() string
	IsDebug() bool
	AddHook(h log.Hook)
}

// HookedLogger implements Logger: a logrus logger whose output goes
// through a destination hook.
type HookedLogger struct {
	*log.Logger

	h    LoggerHook
	dest string
}

var loggers struct {
	cache map[string]Logger
	// guards the cache
	sync.Mutex
}

// GetLogger returns a Logger writing to dest, which can be a file path or
// one of "stdout", "stderr", "off". Loggers are cached per dest, so a
// second call with the same dest returns the same instance. If the hook
// cannot be set up the logger falls back to stderr and the error is
// returned alongside it.
func GetLogger(dest string) (Logger, error) {
	loggers.Lock()
	defer loggers.Unlock()
	if l, ok := loggers.cache[dest]; ok {
		return l, nil
	}
	logger := log.New()
	// the hook does the writing
	logger.Out = ioutil.Discard

	l := &HookedLogger{Logger: logger, dest: dest}
	if loggers.cache == nil {
		loggers.cache = make(map[string]Logger, 1)
	}
	loggers.cache[dest] = l

	h, err := NewLogrusHook(dest)
	if err != nil {
		logger.Out = os.Stderr
		return l, err
	}
	logger.Hooks.Add(h)
	l.h = h
	return l, nil
}

// AddHook adds a further logrus hook.
func (l *HookedLogger) AddHook(h log.Hook) {
	l.Logger.Hooks.Add(h)
}

func (l *HookedLogger) IsDebug() bool {
	return l.GetLevel() == log.DebugLevel.String()
}

// SetLevel sets the log level by name; unknown names are ignored.
func (l *HookedLogger) SetLevel(level string) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	l.Level = logLevel
}

func (l *HookedLogger) GetLevel() string {
	return l.Level.String()
}

// GetLogDest returns the destination the logger was created with.
func (l *HookedLogger) GetLogDest() string {
	return l.dest
}

// Reopen closes and re-opens the underlying log file, for log rotation.
func (l *HookedLogger) Reopen() error {
	if l.h == nil {
		return nil
	}
	return l.h.Reopen()
}
