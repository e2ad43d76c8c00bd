package core

import (
	"errors"
	"fmt"
	"time"
)

// AutoInitializer is implemented by instances that need a post-construct
// step. InitializeDefault runs once, after the instance has been appended to
// its list and the add event has fired, and before the type is marked Done.
type AutoInitializer interface {
	InitializeDefault()
}

var errNilResult = errors.New("constructor returned nil")

// NullableDefault returns the current default for d, or runs the
// initialization protocol when the list is empty. The boolean is false when
// no strategy produced an instance; construction failures are logged, never
// returned.
//
// The per-type lock is released while a constructor runs. A constructor may
// therefore resolve other defaults, including its own type, and two callers
// racing on an empty list may both construct and register an instance. Both
// situations are reported at Error level.
func (r *Registry) NullableDefault(d Descriptor) (any, bool) {
	l := r.list(d)

	l.mu.Lock()
	if v, ok := l.tailLocked(); ok {
		l.mu.Unlock()
		return v, true
	}
	prior, priorAttempt := l.state, l.attempt
	att := &Attempt{Seq: r.seq.Add(1), Caller: callerFrame(), At: time.Now()}
	l.state = StateStarted
	l.attempt = att
	l.mu.Unlock()

	label := fmt.Sprintf("#%d", att.Seq)
	r.traceEnter(label, "Start initialization: "+d.Name())

	switch prior {
	case StateStarted:
		r.tracePrint(label, "*** Already in process ***")
		Logger().Error("proceeding to initialize while already in initialization",
			"type", d.Name(),
			"attempt", att.Seq, "caller", att.Caller,
			"prior_attempt", attemptSeq(priorAttempt), "prior_caller", attemptCaller(priorAttempt))
	case StateDone:
		Logger().Error("initialization already done but list is empty",
			"type", d.Name(),
			"attempt", att.Seq, "caller", att.Caller,
			"prior_attempt", attemptSeq(priorAttempt), "prior_caller", attemptCaller(priorAttempt))
	}

	if f, ok := r.factory(d); ok {
		v, err := construct(d, StrategyAutoDefault, f)
		if err != nil {
			Logger().Error("unexpected failure creating auto-default instance",
				"type", d.Name(), "attempt", att.Seq, "strategy", StrategyAutoDefault.String(), "error", err)
			r.fail(l, label, "(no object) A: "+d.Name())
			return nil, false
		}
		return r.install(l, label, "A", v), true
	}

	for _, p := range r.providers[d] {
		v, err := construct(d, StrategyProvider, func() (any, error) { return p.Default(d) })
		if errors.Is(err, ErrUnsupportedType) {
			Logger().Error("provider does not provide type",
				"type", d.Name(), "attempt", att.Seq, "provider", fmt.Sprintf("%T", p))
			continue
		}
		if err != nil {
			Logger().Error("unexpected failure creating provided instance",
				"type", d.Name(), "attempt", att.Seq, "strategy", StrategyProvider.String(),
				"provider", fmt.Sprintf("%T", p), "error", err)
			r.fail(l, label, "(no object) E: "+d.Name())
			return nil, false
		}
		return r.install(l, label, "I", v), true
	}

	Logger().Debug("no default instance available", "type", d.Name(), "attempt", att.Seq)
	r.fail(l, label, "(no object): "+d.Name())
	return nil, false
}

// factory returns the registry's own auto-default factory for d, falling
// back to the process manifest.
func (r *Registry) factory(d Descriptor) (Factory, bool) {
	if f, ok := r.cfg.Factories[d]; ok {
		return f, true
	}
	if r.manifest == nil {
		return nil, false
	}
	return r.manifest.Factory(d)
}

// construct runs f and validates its result. Any error, panic, nil result or
// result not assignable to d comes back as a *ConstructionError.
func construct(d Descriptor, s Strategy, f Factory) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &ConstructionError{Type: d, Strategy: s, Err: fmt.Errorf("%w: %v", ErrConstructorPanic, p)}
		}
	}()

	v, err = f()
	switch {
	case err != nil:
		return nil, &ConstructionError{Type: d, Strategy: s, Err: err}
	case isNil(v):
		return nil, &ConstructionError{Type: d, Strategy: s, Err: errNilResult}
	case !d.Accepts(v):
		return nil, &ConstructionError{Type: d, Strategy: s, Err: fmt.Errorf("%w: got %T", ErrTypeMismatch, v)}
	}
	return v, nil
}

// install registers a freshly constructed default, runs its post-construct
// hook and marks the type Done.
func (r *Registry) install(l *InstanceList, label, tag string, v any) any {
	r.appendAndNotify(l, v)

	if ai, ok := v.(AutoInitializer); ok {
		runInitializeDefault(l.desc, ai)
	}

	l.mu.Lock()
	l.state = StateDone
	l.mu.Unlock()

	r.traceLeave(label, "End initialization "+tag+": "+l.desc.Name())
	return v
}

func runInitializeDefault(d Descriptor, ai AutoInitializer) {
	defer func() {
		if p := recover(); p != nil {
			Logger().Error("post-construct initialization panicked",
				"type", d.Name(), "panic", fmt.Sprint(p))
		}
	}()
	ai.InitializeDefault()
}

func (r *Registry) fail(l *InstanceList, label, msg string) {
	l.mu.Lock()
	l.state = StateFailed
	l.mu.Unlock()
	r.traceLeave(label, "End initialization "+msg)
}

func attemptSeq(a *Attempt) uint64 {
	if a == nil {
		return 0
	}
	return a.Seq
}

func attemptCaller(a *Attempt) string {
	if a == nil {
		return "unknown"
	}
	return a.Caller
}

func (r *Registry) traceEnter(label, msg string) {
	Logger().Debug(msg, "trace", label)
	r.cfg.Tracer.Enter(label, msg)
}

func (r *Registry) traceLeave(label, msg string) {
	Logger().Debug(msg, "trace", label)
	r.cfg.Tracer.Leave(label, msg)
}

func (r *Registry) tracePrint(label, msg string) {
	Logger().Debug(msg, "trace", label)
	r.cfg.Tracer.Print(label, msg)
}

func (r *Registry) traceRaw(msg string) {
	if msg != "" {
		Logger().Debug(msg, "trace", "drain")
	}
	r.cfg.Tracer.Raw(msg)
}
