package session

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// waitForState waits up to timeout for the FSM to reach expected state.
func waitForState(t *testing.T, m *FSM, expected State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if m.Current() == expected {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for state %v (got %v)", expected, m.Current())
}

type transitionRecorder struct {
	mu  sync.Mutex
	seq []State
}

func (r *transitionRecorder) listener(prev, next State) {
	r.mu.Lock()
	r.seq = append(r.seq, next)
	r.mu.Unlock()
}

func (r *transitionRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.seq...)
}

func TestFSM_StartRunStop(t *testing.T) {
	m := NewFSM(discardLogger)
	defer m.Close()
	r := &transitionRecorder{}
	m.AddListener(r.listener)

	m.EventStart()
	waitForState(t, m, StateStarting, 200*time.Millisecond)
	m.EventStarted()
	waitForState(t, m, StateRunning, 200*time.Millisecond)
	m.EventStop()
	waitForState(t, m, StateStopped, 200*time.Millisecond)

	seq := r.snapshot()
	want := []State{StateStarting, StateRunning, StateStopped}
	if len(seq) != len(want) {
		t.Fatalf("transitions=%v want=%v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transition %d: got %v want %v", i, seq[i], want[i])
		}
	}
}

func TestFSM_UnavailableIsSticky(t *testing.T) {
	m := NewFSM(discardLogger)
	defer m.Close()
	m.EventStart()
	waitForState(t, m, StateStarting, 200*time.Millisecond)
	m.EventUnavailable(errors.New("permission denied"))
	waitForState(t, m, StateUnavailable, 200*time.Millisecond)

	// Stop and late Started events do not hide the failure.
	m.EventStop()
	m.EventStarted()
	time.Sleep(30 * time.Millisecond)
	if st := m.Current(); st != StateUnavailable {
		t.Fatalf("expected unavailable to persist, got %v", st)
	}
	if got := m.Current().Status(); got != "Camera not available" {
		t.Fatalf("status=%q", got)
	}

	// An explicit retry is allowed.
	m.EventStart()
	waitForState(t, m, StateStarting, 200*time.Millisecond)
}

func TestFSM_IgnoresOutOfOrderEvents(t *testing.T) {
	m := NewFSM(discardLogger)
	defer m.Close()
	m.EventStarted()
	m.EventUnavailable(errors.New("late"))
	time.Sleep(30 * time.Millisecond)
	if st := m.Current(); st != StateStopped {
		t.Fatalf("expected stopped, got %v", st)
	}
}

func TestFSM_CloseDropsEvents(t *testing.T) {
	m := NewFSM(discardLogger)
	m.Close()
	m.Close()
	m.EventStart()
	if st := m.Current(); st != StateStopped {
		t.Fatalf("expected stopped after close, got %v", st)
	}
}

func TestState_Status(t *testing.T) {
	cases := map[State]string{
		StateRunning:     "Camera Running",
		StateStopped:     "Camera Stopped",
		StateUnavailable: "Camera not available",
	}
	for st, want := range cases {
		if got := st.Status(); got != want {
			t.Fatalf("state=%v status=%q want %q", st, got, want)
		}
	}
}
