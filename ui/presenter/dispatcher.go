package presenter

import "sync"

// Dispatcher queues work posted from background goroutines and runs it on
// the UI thread when the update loop drains it. The zero value is usable.
type Dispatcher struct {
	mu    sync.Mutex
	queue []func()
}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Post enqueues fn. Safe from any goroutine.
func (d *Dispatcher) Post(fn func()) {
	if d == nil || fn == nil {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()
}

// Drain runs the functions queued so far in order and returns how many ran.
// Functions posted while draining run on the next call.
func (d *Dispatcher) Drain() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	batch := d.queue
	d.queue = nil
	d.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
