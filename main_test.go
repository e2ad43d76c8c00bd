package instreg_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/giantswarm/instreg"
)

// logs records every record logged by the package. Tests run in parallel, so
// assertions filter records by the "type" attribute of a type private to the
// test and only look at records logged after a logWatch was taken.
var logs = &recorder{}

func TestMain(m *testing.M) {
	instreg.SetLogger(slog.New(logs))
	os.Exit(m.Run())
}

// recorder is a slog.Handler that keeps records in memory.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec.Clone())
	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r *recorder) WithGroup(string) slog.Handler { return r }

// mark returns the position of the next record.
func (r *recorder) mark() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// countSince returns how many records logged at or after position from, at
// level and with a message containing msg, carry type=typeName.
func (r *recorder) countSince(from int, level slog.Level, msg, typeName string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records[from:] {
		if rec.Level != level || !strings.Contains(rec.Message, msg) {
			continue
		}
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == "type" && a.Value.String() == typeName {
				n++
				return false
			}
			return true
		})
	}
	return n
}

// logWatch counts records for one type logged after the watch was created,
// so repeated runs in one process (-count=N) do not see earlier records.
type logWatch struct {
	from     int
	typeName string
}

func watchLogs[T any]() logWatch {
	return logWatch{from: logs.mark(), typeName: instreg.TypeOf[T]().Name()}
}

func (w logWatch) count(level slog.Level, msg string) int {
	return logs.countSince(w.from, level, msg, w.typeName)
}

// queueOwner is an Owner that only queues callbacks; tests run them
// explicitly to observe that Dispose is never called inline.
type queueOwner struct {
	mu     sync.Mutex
	queued []func()
}

func (o *queueOwner) Post(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queued = append(o.queued, fn)
}

func (o *queueOwner) pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queued)
}

// run executes and removes every queued callback.
func (o *queueOwner) run() {
	o.mu.Lock()
	fns := o.queued
	o.queued = nil
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// isolated returns a registry that ignores the process manifest.
func isolated(t *testing.T, opts ...instreg.Option) *instreg.Registry {
	t.Helper()
	reg := instreg.New(append([]instreg.Option{instreg.WithoutManifest()}, opts...)...)
	t.Cleanup(func() {
		if err := reg.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return reg
}
