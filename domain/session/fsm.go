package session

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// FSM serializes camera session transitions on its own event loop and
// notifies listeners from that loop.
type FSM struct {
	state     atomic.Int32
	logger    *slog.Logger
	events    chan interface{}
	listeners []Listener
	closeMu   sync.RWMutex
	closed    bool
}

// NewFSM constructs and starts the event loop.
func NewFSM(logger *slog.Logger) *FSM {
	f := &FSM{logger: logger, events: make(chan interface{}, 64)}
	f.state.Store(int32(StateStopped))
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.Error("session fsm panic", "error", r, "stack", string(debug.Stack()))
				}
			}
		}()
		f.loop()
	}()
	return f
}

// events
type (
	evtStart       struct{}
	evtStarted     struct{}
	evtUnavailable struct{ err error }
	evtStop        struct{}
	evtAddListener struct{ l Listener }
)

func (f *FSM) loop() {
	for ev := range f.events {
		cur := f.Current()
		switch e := ev.(type) {
		case evtAddListener:
			f.listeners = append(f.listeners, e.l)
		case evtStart:
			if cur == StateStopped || cur == StateUnavailable {
				f.transition(StateStarting)
			}
		case evtStarted:
			if cur == StateStarting {
				f.transition(StateRunning)
			}
		case evtUnavailable:
			if cur == StateStarting {
				if f.logger != nil {
					f.logger.Warn("camera unavailable", "error", e.err)
				}
				f.transition(StateUnavailable)
			}
		case evtStop:
			if cur != StateUnavailable {
				f.transition(StateStopped)
			}
		}
	}
}

func (f *FSM) transition(next State) {
	prev := f.Current()
	if prev == next {
		return
	}
	f.state.Store(int32(next))
	if f.logger != nil {
		f.logger.Debug("session state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range f.listeners {
		l(prev, next)
	}
}

func (f *FSM) send(ev interface{}) {
	f.closeMu.RLock()
	defer f.closeMu.RUnlock()
	if f.closed {
		return
	}
	f.events <- ev
}

// Public API implements Contract
func (f *FSM) AddListener(l Listener)     { f.send(evtAddListener{l: l}) }
func (f *FSM) Current() State             { return State(f.state.Load()) }
func (f *FSM) EventStart()                { f.send(evtStart{}) }
func (f *FSM) EventStarted()              { f.send(evtStarted{}) }
func (f *FSM) EventUnavailable(err error) { f.send(evtUnavailable{err: err}) }
func (f *FSM) EventStop()                 { f.send(evtStop{}) }

// Close stops the event loop. Events sent afterwards are dropped.
func (f *FSM) Close() {
	f.closeMu.Lock()
	defer f.closeMu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.events)
}

// Ensure contract satisfaction
var _ Contract = (*FSM)(nil)
