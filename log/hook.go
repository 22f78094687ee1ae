package log

import (
	"io"
	"io/ioutil"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// LoggerHook extends the logrus Hook interface with Reopen, so a file
// destination can survive logrotate(8).
type LoggerHook interface {
	log.Hook
	Reopen() error
}

type OutputOption int

const (
	OutputStderr OutputOption = 1 + iota
	OutputStdout
	OutputOff
	OutputFile
)

var outputOptions = [...]string{
	"stderr",
	"stdout",
	"off",
	"file",
}

func (o OutputOption) String() string {
	return outputOptions[o-1]
}

func parseOutputOption(str string) OutputOption {
	switch str {
	case "stderr", "":
		return OutputStderr
	case "stdout":
		return OutputStdout
	case "off":
		return OutputOff
	}
	return OutputFile
}

// LogrusHook writes entries to its destination, one of the OutputOption
// streams or an appended file.
type LogrusHook struct {
	w     io.Writer
	fd    *os.File
	fname string
	// colors off when writing to a file
	plain *log.TextFormatter

	mu sync.Mutex
}

// NewLogrusHook creates a hook writing to dest; see GetLogger for the
// accepted values.
func NewLogrusHook(dest string) (LoggerHook, error) {
	hook := &LogrusHook{}
	switch parseOutputOption(dest) {
	case OutputStderr:
		hook.w = os.Stderr
	case OutputStdout:
		hook.w = os.Stdout
	case OutputOff:
		hook.w = ioutil.Discard
	default:
		hook.fname = dest
		if err := hook.open(); err != nil {
			hook.w = os.Stderr
			return hook, err
		}
	}
	return hook, nil
}

func (hook *LogrusHook) open() error {
	fd, err := os.OpenFile(hook.fname, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	hook.fd = fd
	hook.w = fd
	hook.plain = &log.TextFormatter{DisableColors: true}
	return nil
}

// Fire implements the logrus Hook interface.
func (hook *LogrusHook) Fire(entry *log.Entry) error {
	hook.mu.Lock()
	defer hook.mu.Unlock()
	var line string
	var err error
	if hook.plain != nil {
		var b []byte
		if b, err = hook.plain.Format(entry); err == nil {
			line = string(b)
		}
	} else {
		line, err = entry.String()
	}
	if err != nil {
		return err
	}
	_, err = io.Copy(hook.w, strings.NewReader(line))
	return err
}

// Levels implements the logrus Hook interface.
func (hook *LogrusHook) Levels() []log.Level {
	return log.AllLevels
}

// Reopen closes and re-opens the file descriptor; the file may have been
// renamed by an external program.
func (hook *LogrusHook) Reopen() error {
	hook.mu.Lock()
	defer hook.mu.Unlock()
	if hook.fd == nil {
		return nil
	}
	if err := hook.fd.Close(); err != nil {
		return err
	}
	return hook.open()
}
