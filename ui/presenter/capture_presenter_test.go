package presenter

import (
	"errors"
	"testing"

	"github.com/soocke/vision-overlay-go/ui/model"
)

// mockService implements LifecycleContract.
type mockService struct {
	started, stopped int
	startErr         error
}

func (s *mockService) Start() error { s.started++; return s.startErr }
func (s *mockService) Stop()        { s.stopped++ }

type mockFSM struct {
	start, started, unavailable, stop int
}

func (f *mockFSM) EventStart()            { f.start++ }
func (f *mockFSM) EventStarted()          { f.started++ }
func (f *mockFSM) EventUnavailable(error) { f.unavailable++ }
func (f *mockFSM) EventStop()             { f.stop++ }

type mockView struct {
	reset, editableCalls int
	lastEditable         bool
}

func (v *mockView) PreviewReset()         { v.reset++ }
func (v *mockView) ConfigEditable(b bool) { v.editableCalls++; v.lastEditable = b }

type counter struct{ n int }

func (c *counter) Reset() { c.n++ }
func (c *counter) Clear() { c.n++ }

// newInlinePresenter runs Start synchronously and queues the completion on d.
func newInlinePresenter(svc *mockService) (*CapturePresenter, *model.CaptureModel, *mockFSM, *mockView, *Dispatcher) {
	m := &model.CaptureModel{}
	fsm := &mockFSM{}
	view := &mockView{}
	d := NewDispatcher()
	p := NewCapturePresenter(m, svc, fsm, view, d, nil)
	p.async = func(fn func()) { fn() }
	return p, m, fsm, view, d
}

func TestCapturePresenter_EnableDisable_Idempotent(t *testing.T) {
	svc := &mockService{}
	p, m, fsm, view, d := newInlinePresenter(svc)
	detect, overlay := &counter{}, &counter{}
	p.Detect, p.Overlay = detect, overlay

	p.Enable()
	if m.Running() {
		t.Fatalf("running must only flip after the UI thread handles the start result")
	}
	d.Drain()
	if !m.Running() || svc.started != 1 || fsm.start != 1 || fsm.started != 1 || view.lastEditable || view.editableCalls != 1 {
		t.Fatalf("enable failed: running=%v started=%d start=%d startedEv=%d editableCalls=%d lastEditable=%v", m.Running(), svc.started, fsm.start, fsm.started, view.editableCalls, view.lastEditable)
	}
	p.Enable()
	d.Drain()
	if svc.started != 1 || fsm.start != 1 {
		t.Fatalf("enable not idempotent: started=%d start=%d", svc.started, fsm.start)
	}

	p.Disable()
	if m.Running() || svc.stopped != 1 || fsm.stop != 1 || view.reset != 1 || !view.lastEditable || detect.n != 1 || overlay.n != 1 {
		t.Fatalf("disable failed: running=%v stopped=%d stop=%d reset=%d lastEditable=%v detect=%d overlay=%d", m.Running(), svc.stopped, fsm.stop, view.reset, view.lastEditable, detect.n, overlay.n)
	}
	p.Disable()
	if svc.stopped != 1 || fsm.stop != 1 || view.reset != 1 {
		t.Fatalf("disable not idempotent: stopped=%d stop=%d reset=%d", svc.stopped, fsm.stop, view.reset)
	}
}

func TestCapturePresenter_StartFailureReportsUnavailable(t *testing.T) {
	svc := &mockService{startErr: errors.New("permission denied")}
	p, m, fsm, view, d := newInlinePresenter(svc)
	p.Enable()
	d.Drain()
	if m.Running() || fsm.unavailable != 1 || fsm.started != 0 || !view.lastEditable {
		t.Fatalf("failure not reported: running=%v unavailable=%d started=%d editable=%v", m.Running(), fsm.unavailable, fsm.started, view.lastEditable)
	}
	// No automatic retry.
	d.Drain()
	if svc.started != 1 {
		t.Fatalf("unexpected retry: started=%d", svc.started)
	}
}

func TestCapturePresenter_StopWhileStarting(t *testing.T) {
	svc := &mockService{}
	p, m, fsm, _, d := newInlinePresenter(svc)
	p.Enable()
	p.Disable() // before the UI thread learned about the start
	d.Drain()
	if m.Running() || svc.stopped != 1 || fsm.stop != 1 {
		t.Fatalf("expected session stopped after start completed: running=%v stopped=%d stop=%d", m.Running(), svc.stopped, fsm.stop)
	}
}

func TestCapturePresenter_Toggle(t *testing.T) {
	svc := &mockService{}
	p, m, fsm, view, d := newInlinePresenter(svc)
	p.Toggle()
	d.Drain()
	if !m.Running() || svc.started != 1 || fsm.started != 1 {
		t.Fatalf("toggle enable failed")
	}
	p.Toggle()
	if m.Running() || svc.stopped != 1 || fsm.stop != 1 || view.reset != 1 {
		t.Fatalf("toggle disable failed")
	}
}
