package session

// State enumerates the camera session lifecycle.
type State int32

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Status returns the user-facing status line for s.
func (s State) Status() string {
	switch s {
	case StateRunning:
		return "Camera Running"
	case StateStarting:
		return "Camera Starting"
	case StateUnavailable:
		return "Camera not available"
	default:
		return "Camera Stopped"
	}
}

// Listener is called on each successful state transition.
type Listener func(prev, next State)

// Contract is the lifecycle surface consumed by presenters.
type Contract interface {
	Current() State
	EventStart()
	EventStarted()
	EventUnavailable(err error)
	EventStop()
	AddListener(Listener)
	Close()
}
