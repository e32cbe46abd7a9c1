package presenter

import (
	"sync"
	"time"

	"github.com/soocke/vision-overlay-go/domain/session"
)

// FSMSource provides the session FSM methods the presenter requires.
type FSMSource interface {
	Current() session.State
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// FSMPresenter receives session transitions from the FSM goroutine and
// reflects the newest one on the next Tick.
type FSMPresenter struct {
	eng     FSMSource
	view    StateView
	latest  session.State
	shown   bool
	mu      sync.Mutex
	pending []session.State
}

func NewFSMPresenter(eng FSMSource, view StateView) *FSMPresenter {
	return &FSMPresenter{eng: eng, view: view}
}

// OnState queues a transitioned state. Safe from any goroutine.
func (p *FSMPresenter) OnState(s session.State) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, s)
	p.mu.Unlock()
}

// Tick updates the view with the most recent queued state. The first tick
// shows the FSM's current state.
func (p *FSMPresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	var last session.State
	have := len(p.pending) > 0
	if have {
		last = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	p.mu.Unlock()
	if !have {
		if p.shown {
			return
		}
		last = p.eng.Current()
	}
	if p.shown && last == p.latest {
		return
	}
	p.latest = last
	p.shown = true
	p.view.SetStateLabel(last.Status())
}
