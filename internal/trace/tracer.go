package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// callerWidth is the column the "|" separator is padded to.
const callerWidth = 25

// Tracer writes trace lines. All methods are safe for concurrent use and are
// no-ops on a nil *Tracer, so callers never need to check whether tracing is
// enabled.
type Tracer struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File
	lock   *flock.Flock
	indent int
	log    *slog.Logger
	err    error
}

// New returns a Tracer writing to w. A nil logger selects slog.Default().
func New(w io.Writer, logger *slog.Logger) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{w: w, indent: 1, log: logger}
}

// OpenFile creates (or, with appendMode, appends to) the trace file at path.
// It first takes an exclusive lock on path+".lock", waiting until ctx is done.
func OpenFile(ctx context.Context, path string, appendMode bool, logger *slog.Logger) (*Tracer, error) {
	if path == "" {
		return nil, errors.New("trace path must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create trace directory for %s: %w", path, err)
	}

	fl, err := acquireFileLock(ctx, path+".lock")
	if err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		releaseFileLock(logger, fl)
		return nil, fmt.Errorf("open trace file %s: %w", path, err)
	}

	t := New(f, logger)
	t.file = f
	t.lock = fl
	return t, nil
}

// Enter prints msg at the current depth and then increases the depth.
func (t *Tracer) Enter(caller, msg string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printLocked(caller, msg)
	t.indent++
}

// Leave decreases the depth and then prints msg.
func (t *Tracer) Leave(caller, msg string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.indent > 1 {
		t.indent--
	}
	t.printLocked(caller, msg)
}

// Print prints msg at the current depth.
func (t *Tracer) Print(caller, msg string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printLocked(caller, msg)
}

// Raw writes msg as a line without caller column or indentation.
func (t *Tracer) Raw(msg string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeLocked(msg)
}

func (t *Tracer) printLocked(caller, msg string) {
	label := "[" + caller + "]"
	pad := ""
	if n := callerWidth - len(label); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	t.writeLocked(label + pad + "|" + strings.Repeat(" ", t.indent*2) + msg)
}

// writeLocked writes one line. The first write error is remembered and
// reported by Err; later lines are still attempted.
func (t *Tracer) writeLocked(line string) {
	if _, err := io.WriteString(t.w, line+"\n"); err != nil && t.err == nil {
		t.err = err
		t.log.Warn("trace write failed", "error", err)
	}
}

// Err returns the first write error, if any.
func (t *Tracer) Err() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close closes the trace file and releases its lock. It is a no-op for
// tracers built with New.
func (t *Tracer) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if t.file != nil {
		err = t.file.Close()
		t.file = nil
	}
	releaseFileLock(t.log, t.lock)
	t.lock = nil
	return err
}
