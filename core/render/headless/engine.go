// Package headless provides an in-process render engine with no display.
// It records everything the host asks of it, which makes it the engine of
// choice for tests and offline tooling.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"netviz/core/dataset"
	"netviz/core/render"
)

// ErrClosed is returned by calls on a closed engine.
var ErrClosed = errors.New("engine closed")

// Call records one binding operation.
type Call struct {
	Op      string
	Name    render.EventName
	Handler *render.Handler
}

// Engine is a render.Engine that keeps state in memory.
type Engine struct {
	mu          sync.Mutex
	store       *dataset.Store
	unsubscribe func()
	options     render.Options
	optionSets  int
	handlers    map[render.EventName]*render.Handler
	calls       []Call
	events      []dataset.Event
	closed      bool

	validateOptions func(render.Options) error
	validateBind    func(render.EventName, *render.Handler) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithOptionsValidator makes SetOptions fail when fn returns an error.
func WithOptionsValidator(fn func(render.Options) error) Option {
	return func(e *Engine) { e.validateOptions = fn }
}

// WithBindValidator makes On fail when fn returns an error.
func WithBindValidator(fn func(render.EventName, *render.Handler) error) Option {
	return func(e *Engine) { e.validateBind = fn }
}

// New creates a headless engine.
func New(opts ...Option) *Engine {
	e := &Engine{handlers: make(map[render.EventName]*render.Handler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach subscribes to store events.
func (e *Engine) Attach(store *dataset.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.store = store
	e.unsubscribe = store.Subscribe(func(ev dataset.Event) {
		e.mu.Lock()
		e.events = append(e.events, ev)
		e.mu.Unlock()
	})
	return nil
}

// SetOptions replaces the options.
func (e *Engine) SetOptions(opts render.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.validateOptions != nil {
		if err := e.validateOptions(opts); err != nil {
			return err
		}
	}
	e.options = opts
	e.optionSets++
	return nil
}

// On binds handler to name.
func (e *Engine) On(name render.EventName, handler *render.Handler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.validateBind != nil {
		if err := e.validateBind(name, handler); err != nil {
			return err
		}
	}
	if cur, ok := e.handlers[name]; ok && cur != handler {
		return fmt.Errorf("event %s already bound to %q", name, cur.Name())
	}
	e.handlers[name] = handler
	e.calls = append(e.calls, Call{Op: "on", Name: name, Handler: handler})
	return nil
}

// Off unbinds handler from name.
func (e *Engine) Off(name render.EventName, handler *render.Handler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if cur, ok := e.handlers[name]; !ok || cur != handler {
		return fmt.Errorf("event %s: handler %q not bound", name, handler.Name())
	}
	delete(e.handlers, name)
	e.calls = append(e.calls, Call{Op: "off", Name: name, Handler: handler})
	return nil
}

// Close detaches from the store. Closing twice is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.closed = true
	return nil
}

// Emit dispatches ev to the bound handler and reports whether one was bound.
func (e *Engine) Emit(ev render.Event) bool {
	e.mu.Lock()
	h, ok := e.handlers[ev.Name]
	closed := e.closed
	e.mu.Unlock()
	if !ok || closed {
		return false
	}
	h.Handle(ev)
	return true
}

// Options returns the last accepted options.
func (e *Engine) Options() render.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.options
}

// OptionSets counts accepted SetOptions calls.
func (e *Engine) OptionSets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.optionSets
}

// Bound returns the handler bound to name, if any.
func (e *Engine) Bound(name render.EventName) *render.Handler {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handlers[name]
}

// BoundCount returns the number of bound events.
func (e *Engine) BoundCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Calls returns the binding operations in order.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Events returns the store events observed since Attach.
func (e *Engine) Events() []dataset.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]dataset.Event(nil), e.events...)
}

// Store returns the attached store.
func (e *Engine) Store() *dataset.Store {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// ResetCalls clears the recorded binding operations and store events.
func (e *Engine) ResetCalls() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
	e.events = nil
}
