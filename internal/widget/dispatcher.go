package widget

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrDispatcherStopped = errors.New("dispatcher stopped")

// ClipboardSink stores text on a clipboard.
type ClipboardSink interface {
	WriteAll(text string) error
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithOnChange registers a callback run on the dispatch goroutine after every event.
func WithOnChange(fn func(State)) Option {
	return func(d *Dispatcher) { d.onChange = fn }
}

// WithInitialState replaces DefaultState as the starting state.
func WithInitialState(s State) Option {
	return func(d *Dispatcher) { d.state = s }
}

// WithAfterFunc replaces time.AfterFunc for scheduling copied resets.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(d *Dispatcher) { d.afterFunc = fn }
}

// Dispatcher owns a State and applies events to it one at a time on the
// goroutine running Run.
type Dispatcher struct {
	reducer   Reducer
	clipboard ClipboardSink
	notifier  Notifier
	logger    *slog.Logger
	onChange  func(State)
	afterFunc func(time.Duration, func())

	events chan envelope
	done   chan struct{}

	mu    sync.RWMutex
	state State
}

// NewDispatcher creates a Dispatcher in DefaultState.
func NewDispatcher(r Reducer, clip ClipboardSink, n Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reducer:   r,
		clipboard: clip,
		notifier:  n,
		logger:    slog.Default(),
		afterFunc: func(after time.Duration, fn func()) { time.AfterFunc(after, fn) },
		events:    make(chan envelope, 16),
		done:      make(chan struct{}),
		state:     DefaultState(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current snapshot.
func (d *Dispatcher) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

type envelope struct {
	ev    Event
	reply chan State
}

// Send queues ev for the dispatch goroutine and returns without waiting.
func (d *Dispatcher) Send(ctx context.Context, ev Event) error {
	return d.enqueue(ctx, envelope{ev: ev})
}

// Do queues ev and waits until it has been applied, returning the new state.
func (d *Dispatcher) Do(ctx context.Context, ev Event) (State, error) {
	reply := make(chan State, 1)
	if err := d.enqueue(ctx, envelope{ev: ev, reply: reply}); err != nil {
		return State{}, err
	}

	select {
	case s := <-reply:
		return s, nil
	case <-d.done:
		return State{}, ErrDispatcherStopped
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, env envelope) error {
	select {
	case d.events <- env:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled. It must be called once.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-d.events:
			s := d.apply(env.ev)
			if env.reply != nil {
				env.reply <- s
			}
		}
	}
}

func (d *Dispatcher) apply(ev Event) State {
	d.mu.Lock()
	next, effects := d.reducer.Reduce(d.state, ev)
	d.state = next
	d.mu.Unlock()

	for _, eff := range effects {
		d.run(eff)
	}

	if d.onChange != nil {
		d.onChange(next)
	}
	return next
}

func (d *Dispatcher) run(eff Effect) {
	switch e := eff.(type) {
	case Notify:
		d.notifier.Notify(e.Notification)

	case WriteClipboard:
		if err := d.clipboard.WriteAll(e.Text); err != nil {
			d.logger.Warn("clipboard write failed", "error", err)
			d.notifier.Notify(Notification{Level: LevelWarning, Message: MsgCopyFailed})
			return
		}
		d.notifier.Notify(e.Success)

	case ResetCopied:
		seq := e.Seq
		d.afterFunc(e.After, func() {
			select {
			case d.events <- envelope{ev: ClearCopied{Seq: seq}}:
			case <-d.done:
			}
		})
	}
}
