// Package logger implements the front end's append-only leveled
// logger: every record goes to a configured file, INFO records also
// go to stdout when verbosity > 0, and WARNING/ERROR records always
// also go to stderr (never to stdout). Each record reads
// "<timestamp> [LEVEL]: (<build id>) <message>". Generalizes the teacher driver's env-gated
// debugLog into a small reusable logger, still a standard-library
// build since no structured-logging library appears anywhere in the
// retrieval pack.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the closed set of severities a Logger records.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, append-only records to a file plus optional
// stdout/stderr mirroring. now is swappable so tests can pin the clock.
type Logger struct {
	mu        sync.Mutex
	file      io.Writer
	verbosity int
	buildID   string
	now       func() time.Time
}

// Option configures a Logger at construction time.
type Option func(*Logger)

// WithVerbosity sets the verbosity level; verbosity > 0 mirrors INFO
// records to stdout.
func WithVerbosity(v int) Option {
	return func(l *Logger) { l.verbosity = v }
}

// New creates a Logger writing to file (opened append-only by the
// caller) with a freshly minted build ID threading every record so
// concurrent driver invocations sharing a log file can be told apart.
func New(file io.Writer, opts ...Option) *Logger {
	l := &Logger{
		file:    file,
		buildID: uuid.NewString(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithBuildID returns a copy of l using a caller-supplied build ID
// instead of a freshly minted one, e.g. to tag every record of one
// compilation invocation with an ID known before the logger existed.
func (l *Logger) WithBuildID(id string) *Logger {
	clone := *l
	clone.buildID = id
	return &clone
}

// BuildID returns the build ID threaded through every record l emits.
func (l *Logger) BuildID() string { return l.buildID }

func (l *Logger) record(level Level, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return fmt.Sprintf("%s [%s]: (%s) %s\n", l.now().UTC().Format(time.RFC3339Nano), level, l.buildID, msg)
}

func (l *Logger) write(level Level, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.record(level, format, a...)
	if l.file != nil {
		io.WriteString(l.file, line)
	}
	if level >= WARNING {
		io.WriteString(os.Stderr, line)
	} else if level >= INFO && l.verbosity > 0 {
		io.WriteString(os.Stdout, line)
	}
}

func (l *Logger) Debug(format string, a ...interface{})   { l.write(DEBUG, format, a...) }
func (l *Logger) Info(format string, a ...interface{})    { l.write(INFO, format, a...) }
func (l *Logger) Warning(format string, a ...interface{}) { l.write(WARNING, format, a...) }
func (l *Logger) Error(format string, a ...interface{})   { l.write(ERROR, format, a...) }
