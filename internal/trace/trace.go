// Package trace provides lightweight tracing for decode sessions.
//
// A Session emits events at pass and per-entity granularity so a stuck or
// surprising decode can be diagnosed without a debugger. The default tracer
// is a no-op; a StreamTracer writes one line per event to any io.Writer.
package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelPhase emits session and per-function boundaries.
	LevelPhase
	// LevelDetail adds per-pass events inside a function.
	LevelDetail
	// LevelDebug emits everything, including per-instruction events.
	LevelDebug
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF", "":
		return LevelOff, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "detail", "DETAIL":
		return LevelDetail, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|detail|debug)", s)
	}
}

// Event is a single trace record.
type Event struct {
	Time   time.Time
	Level  Level
	Name   string // e.g. "function", "pass:names"
	Detail string
}

// Tracer receives decode trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Level returns the current tracing level.
	Level() Level

	// Enabled reports whether tracing is active.
	Enabled() bool
}

// Emitf sends a formatted event to t if lvl is within t's level.
func Emitf(t Tracer, lvl Level, name, format string, args ...any) {
	if t == nil || !t.Enabled() || lvl > t.Level() {
		return
	}
	t.Emit(Event{
		Time:   time.Now(),
		Level:  lvl,
		Name:   name,
		Detail: fmt.Sprintf(format, args...),
	})
}

// nopTracer discards everything; zero overhead when tracing is disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop returns the shared no-op tracer.
func Nop() Tracer { return nopTracer{} }

// StreamTracer writes one line per event to an io.Writer.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStream builds a StreamTracer writing to w at the given level.
func NewStream(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes the event as a single line.
func (t *StreamTracer) Emit(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s [%s] %s: %s\n",
		ev.Time.Format("15:04:05.000"), ev.Level, ev.Name, ev.Detail)
}

// Level returns the configured level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether the level is above off.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
